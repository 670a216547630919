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

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/symanalysis/test"
)

func TestParseStore(t *testing.T) {
	kind, arg, err := parseStore("disk")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, kind, "disk")
	test.ExpectEquality(t, arg, "")

	kind, arg, err = parseStore("SQL:settings.db")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, kind, "sql")
	test.ExpectEquality(t, arg, "settings.db")

	// the argument can itself contain colons
	kind, arg, err = parseStore("redis:localhost:6379")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, kind, "redis")
	test.ExpectEquality(t, arg, "localhost:6379")

	_, _, err = parseStore("redis")
	test.ExpectFailure(t, err)
	_, _, err = parseStore("disk:foo")
	test.ExpectFailure(t, err)
	_, _, err = parseStore("floppy")
	test.ExpectFailure(t, err)
}

func TestLaunchShowGlobal(t *testing.T) {
	t.Chdir(t.TempDir())

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{}, w), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "Debug Analysis Settings (global settings)\n"))
	test.ExpectFailure(t, strings.Contains(w.String(), "Clear Existing Symbols"))
}

func TestLaunchGame(t *testing.T) {
	t.Chdir(t.TempDir())

	base := []string{"-game", "SLUS-20312", "-sym", "ELF Symbol Table,User Defined"}
	run := func(args ...string) (int, string) {
		w := &test.Writer{}
		r := launch(append(append([]string{}, base...), args...), w)
		return r, w.String()
	}

	r, out := run("toggle", "User Defined", "true")
	test.ExpectEquality(t, r, 0)
	test.ExpectEquality(t, out, "")

	r, _ = run("addfile", "extra.sym")
	test.ExpectEquality(t, r, 0)

	r, out = run("show")
	test.ExpectEquality(t, r, 0)
	test.ExpectSuccess(t, strings.Contains(out, "      [1] [x] User Defined (disabled)\n"))
	test.ExpectSuccess(t, strings.Contains(out, "      [2] [x] ELF Symbol Table (disabled)\n"))
	test.ExpectSuccess(t, strings.Contains(out, "      1. extra.sym\n"))

	r, _ = run("removefile", "1")
	test.ExpectEquality(t, r, 0)

	r, _ = run("scanmode", "scanmemory")
	test.ExpectEquality(t, r, 0)

	r, out = run("scanmode")
	test.ExpectEquality(t, r, 0)
	test.ExpectEquality(t, out, "Scan Memory\n")

	r, out = run("show")
	test.ExpectEquality(t, r, 0)
	test.ExpectSuccess(t, strings.Contains(out, "Extra Symbol Files\n      none\n"))
}

func TestLaunchGameNotRunning(t *testing.T) {
	t.Chdir(t.TempDir())

	w := &test.Writer{}
	r := launch([]string{"-game", "SLUS-20312", "-running", "SCES-50000", "-sym", "User Defined"}, w)
	test.ExpectEquality(t, r, 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "Start this game to modify the symbol sources list."))

	// sources can't be toggled when the game isn't running
	w.Clear()
	r = launch([]string{"-game", "SLUS-20312", "-running", "SCES-50000", "-sym", "User Defined", "toggle", "User Defined", "false"}, w)
	test.ExpectEquality(t, r, 20)
}

func TestLaunchErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"-store", "floppy"}, w), 10)
	test.ExpectEquality(t, launch([]string{"-bogus"}, w), 10)
	test.ExpectEquality(t, launch([]string{"toggle", "User Defined"}, w), 20)
	test.ExpectEquality(t, launch([]string{"removefile", "0"}, w), 20)
	test.ExpectEquality(t, launch([]string{"scanmode", "scan everything"}, w), 20)

	// extra symbol files are not available in the global settings
	test.ExpectEquality(t, launch([]string{"addfile", "extra.sym"}, w), 20)
}

func TestLaunchVersion(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"version"}, w), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "symanalysis "))
}

func TestLaunchPrefsOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"-game", "SLUS-20312", "scanmode", "skip"}, w), 0)

	// the override takes precedence over the value in the game settings
	w.Clear()
	test.ExpectEquality(t, launch([]string{"-prefs", "Debugger/Analysis.FunctionScanMode::ScanMemory", "-game", "SLUS-20312", "scanmode"}, w), 0)
	test.ExpectEquality(t, w.String(), "Scan Memory\n")

	// and over the global settings
	w.Clear()
	test.ExpectEquality(t, launch([]string{"-prefs", "Debugger/Analysis.FunctionScanMode::ScanMemory", "scanmode"}, w), 0)
	test.ExpectEquality(t, w.String(), "Scan Memory\n")

	// the override is never written to the settings
	w.Clear()
	test.ExpectEquality(t, launch([]string{"-game", "SLUS-20312", "scanmode"}, w), 0)
	test.ExpectEquality(t, w.String(), "Skip\n")

	// the override is applied with the sql store too
	w.Clear()
	args := []string{"-store", "sql:settings.db", "-prefs", "Debugger/Analysis.FunctionScanMode::Skip", "-game", "SLUS-20312", "scanmode"}
	test.ExpectEquality(t, launch(args, w), 0)
	test.ExpectEquality(t, w.String(), "Skip\n")

	// malformed overrides are rejected
	test.ExpectEquality(t, launch([]string{"-prefs", "FunctionScanMode", "scanmode"}, w), 10)
}

func TestLaunchAnalyse(t *testing.T) {
	t.Chdir(t.TempDir())

	data := "00100000 main\n00100200 draw\n"
	test.DemandSuccess(t, os.WriteFile("game.sym", []byte(data), 0o600))

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"-image", "game.iso", "analyse", "-list", "-find", "DRAW"}, w), 0)

	out := w.String()
	test.ExpectSuccess(t, strings.HasPrefix(out, "imported 2 symbols\nfunction scan: Scan ELF\n"))
	test.ExpectSuccess(t, strings.Contains(out, "  Built-In: 0\n"))
	test.ExpectSuccess(t, strings.Contains(out, "    main 0x00100000\n    draw 0x00100200\n"))
	test.ExpectSuccess(t, strings.Contains(out, "    found DRAW at 0x00100200\n"))
	test.ExpectFailure(t, strings.Contains(out, "range:"))

	w.Clear()
	test.ExpectEquality(t, launch([]string{"-image", "game.iso", "analyse", "-find", "missing"}, w), 20)

	// the custom scan range is shown when it is being used
	test.ExpectEquality(t, launch([]string{"-game", "SLUS-20312", "scanrange", "100000", "0x200000"}, w), 0)
	w.Clear()
	args := []string{"-game", "SLUS-20312", "-prefs", "Debugger/Analysis.CustomFunctionScanRange::true", "analyse"}
	test.ExpectEquality(t, launch(args, w), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "  range: 0x00100000 to 0x00200000\n"))
}

func TestLaunchDump(t *testing.T) {
	t.Chdir(t.TempDir())

	w := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"-game", "SLUS-20312", "-sym", "User Defined", "dump", "sources.dot"}, w), 0)
	test.ExpectEquality(t, w.String(), "symbol sources written to sources.dot\n")

	data, err := os.ReadFile("sources.dot")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(data), "digraph structs {\n"))
	test.ExpectSuccess(t, strings.Contains(string(data), "User Defined"))

	// a file that can't be created is an error
	test.ExpectEquality(t, launch([]string{"dump", "missing/sources.dot"}, w), 20)
}
