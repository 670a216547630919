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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/symanalysis/analysis"
	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/modalflag"
	"github.com/jetsetilly/symanalysis/paths"
	"github.com/jetsetilly/symanalysis/prefs"
	"github.com/jetsetilly/symanalysis/prefs/redisstore"
	"github.com/jetsetilly/symanalysis/prefs/sqlstore"
	"github.com/jetsetilly/symanalysis/statsview"
	"github.com/jetsetilly/symanalysis/symbols"
	"github.com/jetsetilly/symanalysis/terminal"
	"github.com/jetsetilly/symanalysis/version"
)

// environment variable holding the password for the redis store
const redisPasswordEnv = "SYMANALYSIS_REDIS_PASSWORD"

// key prefix for settings in the redis store
const redisPrefix = "symanalysis"

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch the program with the command line arguments. Returns the value to
// be used with os.Exit().
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)

	store := md.AddString("store", "disk", "settings storage: disk, sql:<dsn> or redis:<addr>")
	game := md.AddString("game", "", "serial of the game whose settings are to be edited")
	running := md.AddString("running", "", "serial of the running game (default is the value of -game)")
	elf := md.AddString("elf", "", "path to the ELF file of the running game")
	image := md.AddString("image", "", "path to the image of the running game")
	sym := md.AddString("sym", "", "comma separated list of symbol sources in the live database")
	prefsOverride := md.AddString("prefs", "", "preferences overrides (key::value; key::value)")
	echo := md.AddBool("log", false, "echo log to stderr")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	md.AddSubModes("SHOW", "EDIT", "TOGGLE", "ADDFILE", "REMOVEFILE", "SCANRANGE", "SCANMODE", "ANALYSE", "DUMP", "VERSION")
	md.ModeHelp("SHOW", "print the settings panel")
	md.ModeHelp("EDIT", "edit the settings panel interactively")
	md.ModeHelp("TOGGLE", "name true|false: choose whether a symbol source is cleared")
	md.ModeHelp("ADDFILE", "path: add an extra symbol file")
	md.ModeHelp("REMOVEFILE", "index: remove an extra symbol file")
	md.ModeHelp("SCANRANGE", "start end: set the custom function scan range")
	md.ModeHelp("SCANMODE", "name: set the function scan mode")
	md.ModeHelp("ANALYSE", "import symbols into the live database")
	md.ModeHelp("DUMP", "[file]: write a graphviz file of the symbol source reconciler")
	md.ModeHelp("VERSION", "print version information")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	if md.Mode() == "VERSION" {
		fmt.Fprintln(output, version.Version())
		return 0
	}

	// the running game is assumed to be the game being edited unless
	// specified otherwise
	runningSet := false
	md.Visit(func(flag string) {
		if flag == "running" {
			runningSet = true
		}
	})
	if !runningSet {
		*running = *game
	}

	if *echo {
		logger.SetEcho(logger.NewColorizer(os.Stderr, "yellow"), false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(output)
		} else {
			fmt.Fprintln(output, "* statsview not available in this build")
		}
	}

	ctx := context.Background()

	st, closer, err := openStore(ctx, *store, *game)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}
	defer func() {
		if err := closer(); err != nil {
			logger.Log(logger.Allow, "symanalysis", err)
		}
	}()

	// overrides are placed over every other store so that they take
	// precedence over both the game and the global settings
	if *prefsOverride != "" {
		st, err = prefs.NewOverrides(st, *prefsOverride)
		if err != nil {
			fmt.Fprintf(output, "* error: %v\n", err)
			return 10
		}
	}

	g := liveDatabase(*sym)
	in := analysis.Inputs{ELF: *elf, Image: *image}

	cfg := analysis.Config{
		Mode:          analysis.GlobalSettings,
		Serial:        *game,
		RunningSerial: *running,
		Database:      g,
	}
	if *game != "" {
		cfg.Mode = analysis.GameSettings
	}

	// the panel is assigned after creation. the reload function is not called
	// during NewPanel()
	var pnl *analysis.Panel
	cfg.Reload = func() {
		n := analysis.Import(g, pnl.Options(), in)
		logger.Logf(logger.Allow, "symanalysis", "reloaded %d symbols", n)
		pnl.Refresh()
	}

	pnl, err = analysis.NewPanel(st, cfg)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}
	in.Policy = pnl.Policy()

	switch md.Mode() {
	case "SHOW":
		terminal.Render(output, pnl)
	case "EDIT":
		err = terminal.Run(pnl, os.Stdin, os.Stdout)
	case "TOGGLE":
		err = toggle(md, pnl)
	case "ADDFILE":
		err = addFile(md, pnl)
	case "REMOVEFILE":
		err = removeFile(md, pnl)
	case "SCANRANGE":
		err = scanRange(md, pnl)
	case "SCANMODE":
		err = scanMode(md, pnl)
	case "ANALYSE":
		err = analyse(md, pnl, g, in)
	case "DUMP":
		err = dump(md, pnl, *game)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// parseStore splits the value of the -store flag into the kind of store and
// its argument.
func parseStore(s string) (string, string, error) {
	kind, arg, _ := strings.Cut(s, ":")
	kind = strings.ToLower(strings.TrimSpace(kind))

	switch kind {
	case "disk":
		if arg != "" {
			return "", "", errors.New("store: disk takes no argument")
		}
	case "sql", "redis":
		if arg == "" {
			return "", "", fmt.Errorf("store: %s requires an argument", kind)
		}
	default:
		return "", "", fmt.Errorf("store: unknown kind %q", kind)
	}

	return kind, arg, nil
}

// openStore creates the settings store described by the -store flag. If a
// game serial is given then the game settings are layered over the global
// settings. The returned function should be called when the store is no
// longer required.
func openStore(ctx context.Context, spec string, serial string) (prefs.Store, func() error, error) {
	kind, arg, err := parseStore(spec)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case "sql":
		db, err := sqlstore.Open(arg)
		if err != nil {
			return nil, nil, err
		}
		global := db.Store(sqlstore.GlobalLayer)
		if serial == "" {
			return global, db.Close, nil
		}
		return prefs.NewLayered(db.Store(serial), global), db.Close, nil

	case "redis":
		client, err := redisstore.Connect(ctx, arg, os.Getenv(redisPasswordEnv))
		if err != nil {
			return nil, nil, err
		}
		global := redisstore.New(ctx, client, redisPrefix)
		if serial == "" {
			return global, client.Close, nil
		}
		game := redisstore.New(ctx, client, fmt.Sprintf("%s:%s", redisPrefix, serial))
		return prefs.NewLayered(game, global), client.Close, nil
	}

	noClose := func() error { return nil }

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, nil, err
	}
	global, err := loadDisk(pth)
	if err != nil {
		return nil, nil, err
	}
	if serial == "" {
		return global, noClose, nil
	}

	pth, err = paths.GameSettings(serial)
	if err != nil {
		return nil, nil, err
	}
	game, err := loadDisk(pth)
	if err != nil {
		return nil, nil, err
	}

	return prefs.NewLayered(game, global), noClose, nil
}

// loadDisk creates a disk store and loads it. A missing file is not an error.
func loadDisk(pth string) (*prefs.Disk, error) {
	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	if err := dsk.Load(); err != nil && !errors.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}
	return dsk, nil
}

// liveDatabase creates a symbol database containing the built-in source and
// the comma separated list of sources.
func liveDatabase(sources string) *symbols.Guardian {
	g := symbols.NewGuardian()
	g.ReadWrite(func(db *symbols.Database) {
		db.AddSource(symbols.BuiltIn)
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				db.AddSource(s)
			}
		}
	})
	return g
}

func toggle(md *modalflag.Modes, pnl *analysis.Panel) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("symbol source name and true|false required for %s mode", md)
	}

	name := md.GetArg(0)
	v, err := strconv.ParseBool(md.GetArg(1))
	if err != nil {
		return fmt.Errorf("not a boolean value: %s", md.GetArg(1))
	}

	if _, ok := sourceEntry(pnl, name); !ok {
		return fmt.Errorf("no symbol source named %q", name)
	}

	return pnl.ToggleSource(name, v)
}

func sourceEntry(pnl *analysis.Panel, name string) (symbols.SourceEntry, bool) {
	for _, e := range pnl.Sources() {
		if e.Name == name {
			return e, true
		}
	}
	return symbols.SourceEntry{}, false
}

func addFile(md *modalflag.Modes, pnl *analysis.Panel) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("symbol file required for %s mode", md)
	case 1:
		return pnl.AddSymbolFile(md.GetArg(0))
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}

func removeFile(md *modalflag.Modes, pnl *analysis.Panel) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("symbol file index required for %s mode", md)
	}

	// indexes on the command line count from one, as shown by the SHOW mode
	var indices []int
	for _, a := range md.RemainingArgs() {
		i, err := strconv.Atoi(a)
		if err != nil || i < 1 {
			return fmt.Errorf("not a symbol file index: %s", a)
		}
		indices = append(indices, i-1)
	}

	return pnl.RemoveSymbolFiles(indices...)
}

func scanRange(md *modalflag.Modes, pnl *analysis.Panel) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("start and end address required for %s mode", md)
	}

	for _, a := range md.RemainingArgs() {
		if _, err := analysis.ParseAddress(a); err != nil {
			return err
		}
	}

	return pnl.SetFunctionScanRange(md.GetArg(0), md.GetArg(1))
}

func scanMode(md *modalflag.Modes, pnl *analysis.Panel) error {
	md.NewMode()

	var modes []string
	for _, m := range analysis.ScanModes {
		modes = append(modes, m.String())
	}
	md.AdditionalHelp(fmt.Sprintf("scan modes: %s", strings.Join(modes, ", ")))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		fmt.Fprintln(md.Output, pnl.ScanMode().Label())
		return nil
	case 1:
		return pnl.SetFunctionScanMode(md.GetArg(0))
	}

	return fmt.Errorf("too many arguments for %s mode", md)
}

func analyse(md *modalflag.Modes, pnl *analysis.Panel, g *symbols.Guardian, in analysis.Inputs) error {
	md.NewMode()
	list := md.AddBool("list", false, "list the symbols in every source")
	find := md.AddString("find", "", "search every source for the named symbol")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	opts := pnl.Options()

	n := analysis.Import(g, opts, in)
	fmt.Fprintf(md.Output, "imported %d symbols\n", n)

	fmt.Fprintf(md.Output, "function scan: %s\n", opts.FunctionScanMode.Label())
	if start, end, ok := opts.ScanRange(); ok {
		fmt.Fprintf(md.Output, "  range: 0x%08x to 0x%08x\n", start, end)
	}

	found := false

	g.Read(func(db *symbols.Database) {
		for _, name := range db.SourceNames() {
			src, ok := db.Source(name)
			if !ok {
				continue // for loop
			}

			fmt.Fprintf(md.Output, "  %s: %d\n", name, src.Len())

			if *list {
				for _, sym := range src.Symbols() {
					fmt.Fprintf(md.Output, "    %-*s 0x%08x\n", src.MaxWidth(), sym.Name, sym.Address)
				}
			}

			if *find != "" {
				if addr, ok := src.Search(*find); ok {
					fmt.Fprintf(md.Output, "    found %s at 0x%08x\n", *find, addr)
					found = true
				}
			}
		}
	})

	if *find != "" && !found {
		return fmt.Errorf("symbol not found: %s", *find)
	}

	return nil
}

func dump(md *modalflag.Modes, pnl *analysis.Panel, serial string) (rerr error) {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fn := md.GetArg(0)
	if fn == "" {
		fn = paths.UniqueFilename("symanalysis_dump", serial) + ".dot"
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	pnl.Dump(f)

	fmt.Fprintf(md.Output, "symbol sources written to %s\n", fn)

	return nil
}
