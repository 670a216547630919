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

package analysis_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/symanalysis/analysis"
	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/symbols"
	"github.com/jetsetilly/symanalysis/test"
)

// populatedDatabase returns a database with one symbol in each of the sources
// that an analysis run would create and one in a source created by the user.
func populatedDatabase() *symbols.Guardian {
	g := symbols.NewGuardian()
	g.ReadWrite(func(db *symbols.Database) {
		db.AddSource(symbols.BuiltIn).Add(0x80000000, "builtin", false)
		db.AddSource(symbols.ELFSymbolTable).Add(0x00100000, "main", false)
		db.AddSource(symbols.FunctionScanner).Add(0x00100100, "func_00100100", false)
		db.AddSource("User Defined").Add(0x00200000, "my_function", false)
	})
	return g
}

func sourceLen(g *symbols.Guardian, name string) int {
	n := -1
	g.Read(func(db *symbols.Database) {
		if src, ok := db.Source(name); ok {
			n = src.Len()
		}
	})
	return n
}

func TestImportAutomaticClear(t *testing.T) {
	g := populatedDatabase()

	opts := analysis.DefaultOptions()
	opts.ImportSymbolsFromELF = false
	opts.ImportSymFileFromDefaultLocation = false

	n := analysis.Import(g, opts, analysis.Inputs{})
	test.ExpectEquality(t, n, 0)

	test.ExpectEquality(t, sourceLen(g, symbols.BuiltIn), 1)
	test.ExpectEquality(t, sourceLen(g, symbols.ELFSymbolTable), 0)
	test.ExpectEquality(t, sourceLen(g, symbols.FunctionScanner), 0)
	test.ExpectEquality(t, sourceLen(g, "User Defined"), 1)
}

func TestImportSelectedClear(t *testing.T) {
	g := populatedDatabase()

	opts := analysis.DefaultOptions()
	opts.AutomaticallySelectSymbolsToClear = false
	opts.ImportSymbolsFromELF = false
	opts.ImportSymFileFromDefaultLocation = false
	opts.SymbolSources = []symbols.SourceSetting{
		{Name: symbols.ELFSymbolTable, ClearDuringAnalysis: false},
		{Name: symbols.FunctionScanner, ClearDuringAnalysis: true},
		{Name: "User Defined", ClearDuringAnalysis: true},
		{Name: symbols.BuiltIn, ClearDuringAnalysis: true},
		{Name: "Missing", ClearDuringAnalysis: true},
	}

	analysis.Import(g, opts, analysis.Inputs{})

	test.ExpectEquality(t, sourceLen(g, symbols.BuiltIn), 1)
	test.ExpectEquality(t, sourceLen(g, symbols.ELFSymbolTable), 1)
	test.ExpectEquality(t, sourceLen(g, symbols.FunctionScanner), 0)
	test.ExpectEquality(t, sourceLen(g, "User Defined"), 0)
	test.ExpectEquality(t, sourceLen(g, "Missing"), -1)
}

func TestImportSymbolFiles(t *testing.T) {
	dir := t.TempDir()

	image := filepath.Join(dir, "game.iso")
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "game.sym"), []byte("00100000 main\n00100200 draw\n"), 0o600))

	extra := filepath.Join(dir, "overlay.sym")
	test.DemandSuccess(t, os.WriteFile(extra, []byte("00300000 overlay_init\n"), 0o600))

	missing := filepath.Join(dir, "missing.sym")

	g := symbols.NewGuardian()

	opts := analysis.DefaultOptions()
	opts.ExtraSymbolFiles = []string{extra, "", missing}

	n := analysis.Import(g, opts, analysis.Inputs{
		Image: image,
	})
	test.ExpectEquality(t, n, 3)

	test.ExpectEquality(t, sourceLen(g, symbols.NocashSymbols), 2)
	test.ExpectEquality(t, sourceLen(g, "overlay.sym"), 1)
	test.ExpectEquality(t, sourceLen(g, "missing.sym"), -1)

	// the missing extra file is logged
	w := &test.Writer{}
	logger.Tail(w, 1)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "analysis: importing symbol file: "))

	// default .sym file is not imported if the option is off
	g = symbols.NewGuardian()
	opts.ImportSymFileFromDefaultLocation = false
	opts.ExtraSymbolFiles = nil
	n = analysis.Import(g, opts, analysis.Inputs{
		Image: image,
	})
	test.ExpectEquality(t, n, 0)
	test.ExpectEquality(t, sourceLen(g, symbols.NocashSymbols), -1)
}

func TestImportELFFailure(t *testing.T) {
	dir := t.TempDir()
	elf := filepath.Join(dir, "boot.elf")
	test.DemandSuccess(t, os.WriteFile(elf, []byte("not an elf"), 0o600))

	extra := filepath.Join(dir, "extra.sym")
	test.DemandSuccess(t, os.WriteFile(extra, []byte("main 00100000\n"), 0o600))

	g := symbols.NewGuardian()

	opts := analysis.DefaultOptions()
	opts.ExtraSymbolFiles = []string{extra}

	// a bad ELF file does not stop the import
	n := analysis.Import(g, opts, analysis.Inputs{
		ELF: elf,
	})
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, sourceLen(g, "extra.sym"), 1)
}

func TestImportAutomaticClearPolicy(t *testing.T) {
	g := populatedDatabase()

	opts := analysis.DefaultOptions()
	opts.ImportSymbolsFromELF = false
	opts.ImportSymFileFromDefaultLocation = false

	// only the user's source is cleared by this policy
	in := analysis.Inputs{Policy: func(name string) bool {
		return name == "User Defined"
	}}
	analysis.Import(g, opts, in)

	test.ExpectEquality(t, sourceLen(g, symbols.ELFSymbolTable), 1)
	test.ExpectEquality(t, sourceLen(g, symbols.FunctionScanner), 1)
	test.ExpectEquality(t, sourceLen(g, "User Defined"), 0)
	test.ExpectEquality(t, sourceLen(g, symbols.BuiltIn), 1)
}
