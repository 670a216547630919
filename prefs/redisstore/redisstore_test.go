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

package redisstore_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/prefs"
	"github.com/jetsetilly/symanalysis/prefs/redisstore"
)

func TestGetValues(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "symanalysis")

	mock.ExpectHGet("symanalysis:Debugger/Analysis", "DemangleSymbols").SetVal("false")
	mock.ExpectHGet("symanalysis:Debugger/Analysis", "FunctionScanMode").SetVal("ScanMemory")
	mock.ExpectHGet("symanalysis:Debugger/Analysis/SymbolSources", "Count").SetVal("3")
	mock.ExpectHGet("symanalysis:Debugger/Analysis", "GenerateFunctionHashes").RedisNil()
	mock.ExpectHGet("symanalysis:Debugger/Analysis/ExtraSymbolFiles", "Count").SetVal("lots")

	assert.False(t, s.GetBool("Debugger/Analysis", "DemangleSymbols", true))
	assert.Equal(t, "ScanMemory", s.GetString("Debugger/Analysis", "FunctionScanMode", "ScanELF"))
	assert.Equal(t, 3, s.GetInt("Debugger/Analysis/SymbolSources", "Count", 0))
	assert.True(t, s.GetBool("Debugger/Analysis", "GenerateFunctionHashes", true))
	assert.Equal(t, 0, s.GetInt("Debugger/Analysis/ExtraSymbolFiles", "Count", 0))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetErrorIsLogged(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "symanalysis")

	mock.ExpectHGet("symanalysis:Debugger/Analysis", "DemangleSymbols").SetErr(errors.New("connection refused"))

	logger.Clear()
	assert.True(t, s.GetBool("Debugger/Analysis", "DemangleSymbols", true))

	w := &strings.Builder{}
	logger.Tail(w, 1)
	assert.Equal(t, "redisstore: Debugger/Analysis.DemangleSymbols: connection refused\n", w.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetValues(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "SLUS-20946")

	mock.ExpectHSet("SLUS-20946:Debugger/Analysis", "DemangleSymbols", "true").SetVal(1)
	mock.ExpectHSet("SLUS-20946:Debugger/Analysis", "FunctionScanStartAddress", "100000").SetVal(1)
	mock.ExpectHSet("SLUS-20946:Debugger/Analysis/SymbolSources", "Count", "2").SetVal(1)
	mock.ExpectHSet("SLUS-20946:Debugger/Analysis", "DemangleParameters", "false").SetErr(errors.New("read only replica"))

	require.NoError(t, s.SetBool("Debugger/Analysis", "DemangleSymbols", true))
	require.NoError(t, s.SetString("Debugger/Analysis", "FunctionScanStartAddress", "100000"))
	require.NoError(t, s.SetInt("Debugger/Analysis/SymbolSources", "Count", 2))
	assert.Error(t, s.SetBool("Debugger/Analysis", "DemangleParameters", false))

	assert.NoError(t, s.Save())
	require.NoError(t, mock.ExpectationsWereMet())
}

// the indexed array encoding must remove the old range and the parent before
// writing the new range
func TestWriteArray(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "SLUS-20946")

	const parent = "Debugger/Analysis/SymbolSources"

	mock.ExpectHGet("SLUS-20946:"+parent, "Count").SetVal("2")
	mock.ExpectDel("SLUS-20946:" + parent + "/0").SetVal(1)
	mock.ExpectDel("SLUS-20946:" + parent + "/1").SetVal(1)
	mock.ExpectDel("SLUS-20946:" + parent).SetVal(1)
	mock.ExpectHSet("SLUS-20946:"+parent, "Count", "1").SetVal(1)
	mock.ExpectHSet("SLUS-20946:"+parent+"/0", "Name", "Function Scanner").SetVal(1)
	mock.ExpectHSet("SLUS-20946:"+parent+"/0", "ClearDuringAnalysis", "false").SetVal(1)

	err := prefs.WriteArray(s, parent, 1, func(i int, section string) error {
		if err := s.SetString(section, "Name", "Function Scanner"); err != nil {
			return err
		}
		return s.SetBool(section, "ClearDuringAnalysis", false)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteEmptyArray(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "SLUS-20946")

	const parent = "Debugger/Analysis/ExtraSymbolFiles"

	mock.ExpectHGet("SLUS-20946:"+parent, "Count").SetVal("1")
	mock.ExpectDel("SLUS-20946:" + parent + "/0").SetVal(1)
	mock.ExpectDel("SLUS-20946:" + parent).SetVal(1)

	require.NoError(t, prefs.WriteArray(s, parent, 0, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveSectionError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := redisstore.New(context.Background(), db, "symanalysis")

	mock.ExpectDel("symanalysis:Debugger/Analysis").SetErr(errors.New("timeout"))

	assert.Error(t, s.RemoveSection("Debugger/Analysis"))
	require.NoError(t, mock.ExpectationsWereMet())
}
