// This file is part of symanalysis.
//
// symanalysis is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// symanalysis is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with symanalysis.  If not, see <https://www.gnu.org/licenses/>.

package sqlstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/symanalysis/prefs"
	"github.com/jetsetilly/symanalysis/prefs/sqlstore"
)

// setupTestDB opens a sqlite settings database in a temporary directory.
func setupTestDB(t *testing.T) *sqlstore.DB {
	t.Helper()

	db, err := sqlstore.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err, "failed to open settings database")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := sqlstore.Open("")
	assert.Error(t, err)
}

func TestStoreValues(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	s := db.Store(sqlstore.GlobalLayer)

	// defaults when nothing is stored
	assert.True(t, s.GetBool("Debugger/Analysis", "DemangleSymbols", true))
	assert.Equal(t, "0", s.GetString("Debugger/Analysis", "FunctionScanStartAddress", "0"))
	assert.Equal(t, 0, s.GetInt("Debugger/Analysis/SymbolSources", "Count", 0))

	require.NoError(t, s.SetBool("Debugger/Analysis", "DemangleSymbols", false))
	require.NoError(t, s.SetString("Debugger/Analysis", "FunctionScanStartAddress", "100000"))
	require.NoError(t, s.SetInt("Debugger/Analysis/SymbolSources", "Count", 2))

	assert.False(t, s.GetBool("Debugger/Analysis", "DemangleSymbols", true))
	assert.Equal(t, "100000", s.GetString("Debugger/Analysis", "FunctionScanStartAddress", "0"))
	assert.Equal(t, 2, s.GetInt("Debugger/Analysis/SymbolSources", "Count", 0))

	// overwriting an existing value
	require.NoError(t, s.SetBool("Debugger/Analysis", "DemangleSymbols", true))
	assert.True(t, s.GetBool("Debugger/Analysis", "DemangleSymbols", false))

	// value that cannot be converted
	require.NoError(t, s.SetString("Debugger/Analysis", "Count", "many"))
	assert.Equal(t, 5, s.GetInt("Debugger/Analysis", "Count", 5))

	assert.NoError(t, s.Save())
}

func TestStoreRemoveSection(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	s := db.Store(sqlstore.GlobalLayer)

	require.NoError(t, s.SetString("Debugger/Analysis/ExtraSymbolFiles", "Count", "1"))
	require.NoError(t, s.SetString("Debugger/Analysis/ExtraSymbolFiles/0", "Path", "game.sym"))

	require.NoError(t, s.RemoveSection("Debugger/Analysis/ExtraSymbolFiles"))
	assert.Equal(t, 0, s.GetInt("Debugger/Analysis/ExtraSymbolFiles", "Count", 0))

	// nested section is untouched
	assert.Equal(t, "game.sym", s.GetString("Debugger/Analysis/ExtraSymbolFiles/0", "Path", ""))
}

func TestStoreLayers(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	global := db.Store(sqlstore.GlobalLayer)
	game := db.Store("SLUS-20946")

	require.NoError(t, global.SetBool("Debugger/Analysis", "ImportSymbolsFromELF", false))
	require.NoError(t, game.SetBool("Debugger/Analysis", "ImportSymbolsFromELF", true))

	assert.False(t, global.GetBool("Debugger/Analysis", "ImportSymbolsFromELF", true))
	assert.True(t, game.GetBool("Debugger/Analysis", "ImportSymbolsFromELF", false))

	// removing a section in one layer leaves the other layer alone
	require.NoError(t, game.RemoveSection("Debugger/Analysis"))
	assert.False(t, global.GetBool("Debugger/Analysis", "ImportSymbolsFromELF", true))

	// layered store gives the effective value
	l := prefs.NewLayered(game, global)
	assert.False(t, l.GetBool("Debugger/Analysis", "ImportSymbolsFromELF", true))
}

func TestStoreArray(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	s := db.Store("SLUS-20946")

	const parent = "Debugger/Analysis/SymbolSources"

	names := []string{"ELF Symbol Table", "Function Scanner"}
	err := prefs.WriteArray(s, parent, len(names), func(i int, section string) error {
		if err := s.SetString(section, "Name", names[i]); err != nil {
			return err
		}
		return s.SetBool(section, "ClearDuringAnalysis", true)
	})
	require.NoError(t, err)

	var read []string
	prefs.ReadArray(s, parent, func(section string) {
		read = append(read, s.GetString(section, "Name", ""))
	})
	assert.Equal(t, names, read)

	// writing an empty array clears everything
	require.NoError(t, prefs.WriteArray(s, parent, 0, nil))
	assert.Equal(t, 0, s.GetInt(parent, prefs.CountKey, 0))
	assert.Equal(t, "", s.GetString(prefs.ArrayItem(parent, 0), "Name", ""))
	assert.Equal(t, "", s.GetString(prefs.ArrayItem(parent, 1), "Name", ""))
}
