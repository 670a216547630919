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

package analysis

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/prefs"
	"github.com/jetsetilly/symanalysis/symbols"
)

// Mode says how the Panel is being used.
type Mode int

// List of valid Mode values.
const (
	// the panel is used to assemble a one-off set of Options. values are
	// read from the store but nothing is ever written
	Standalone Mode = iota

	// the panel edits the global settings. options that only make sense for
	// a specific game are hidden
	GlobalSettings

	// the panel edits the settings for a single game
	GameSettings
)

func (m Mode) String() string {
	switch m {
	case Standalone:
		return "standalone"
	case GlobalSettings:
		return "global settings"
	case GameSettings:
		return "game settings"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Config for a new Panel.
type Config struct {
	Mode Mode

	// serial of the game whose settings are being edited and the serial of
	// the game that is currently running. the symbol source grid can only be
	// built for the running game because the sources come from the live
	// database
	Serial        string
	RunningSerial string

	// the live symbol database. can be nil, in which case there are no live
	// symbol sources
	Database *symbols.Guardian

	// default ClearDuringAnalysis value for sources the user has not chosen
	// for. if nil then symbols.ClearByDefault is used
	Policy symbols.DefaultPolicy

	// called after the list of extra symbol files has been saved. can be nil
	Reload func()
}

// GridState describes the state of the symbol source grid.
type GridState int

// List of valid GridState values.
const (
	GridHidden GridState = iota
	GridReady
	GridEmpty
	GridGameNotRunning
)

// Message returns the text that should be shown in place of the grid. Returns
// the empty string if no message is required.
func (s GridState) Message() string {
	switch s {
	case GridEmpty:
		return "No symbol sources in database."
	case GridGameNotRunning:
		return "Start this game to modify the symbol sources list."
	}
	return ""
}

// Visibility of the parts of the panel that are not shown in every Mode.
type Visibility struct {
	SymbolSources bool
	SymbolFiles   bool
	CustomRange   bool
}

// Enabled states of the parts of the panel that depend on the value of other
// options.
type Enabled struct {
	SymbolSources      bool
	DemangleParameters bool
	AddressRange       bool
}

// NotAvailable is returned (wrapped) when an operation is attempted on a part
// of the panel that is hidden.
var NotAvailable = errors.New("analysis: not available")

// Panel is the model for the analysis settings. The option values are bound
// to the settings store, so changing a value with Set() writes it to the
// store, unless the Mode is Standalone.
//
// The Panel is not safe for concurrent use.
type Panel struct {
	store prefs.Store
	cfg   Config

	AutomaticallySelectSymbolsToClear prefs.Bool
	ImportSymbolsFromELF              prefs.Bool
	ImportSymFileFromDefaultLocation  prefs.Bool
	DemangleSymbols                   prefs.Bool
	DemangleParameters                prefs.Bool
	FunctionScanMode                  prefs.String
	CustomFunctionScanRange           prefs.Bool
	FunctionScanStartAddress          prefs.String
	FunctionScanEndAddress            prefs.String
	GenerateFunctionHashes            prefs.Bool

	sources *symbols.Reconciler
	grid    GridState
	files   []string
}

// NewPanel is the preferred method of initialisation for the Panel type.
func NewPanel(store prefs.Store, cfg Config) (*Panel, error) {
	if cfg.Policy == nil {
		cfg.Policy = symbols.ClearByDefault
	}

	p := &Panel{
		store:   store,
		cfg:     cfg,
		sources: symbols.NewReconciler(cfg.Policy),
		grid:    GridHidden,
	}

	// options that are only shown for a game are not bound in the global
	// settings. they are still loaded so that Options() is complete
	options := []struct {
		key      string
		pref     prefs.Pref
		def      prefs.Value
		gameOnly bool
	}{
		{KeyAutomaticallySelectSymbolsToClear, &p.AutomaticallySelectSymbolsToClear, true, true},
		{KeyImportSymbolsFromELF, &p.ImportSymbolsFromELF, true, false},
		{KeyImportSymFileFromDefaultLocation, &p.ImportSymFileFromDefaultLocation, true, false},
		{KeyDemangleSymbols, &p.DemangleSymbols, true, false},
		{KeyDemangleParameters, &p.DemangleParameters, true, false},
		{KeyFunctionScanMode, &p.FunctionScanMode, ScanELF.String(), false},
		{KeyCustomFunctionScanRange, &p.CustomFunctionScanRange, false, true},
		{KeyFunctionScanStartAddress, &p.FunctionScanStartAddress, "0", true},
		{KeyFunctionScanEndAddress, &p.FunctionScanEndAddress, "0", true},
		{KeyGenerateFunctionHashes, &p.GenerateFunctionHashes, true, false},
	}

	for _, o := range options {
		var err error
		if cfg.Mode != Standalone && (!o.gameOnly || cfg.Mode == GameSettings) {
			err = prefs.Bind(store, Section, o.key, o.pref, o.def, p.commit)
		} else {
			err = prefs.Load(store, Section, o.key, o.pref, o.def)
		}
		if err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
	}

	p.FunctionScanMode.SetHookPre(func(v prefs.Value) error {
		_, err := ParseScanMode(fmt.Sprint(v))
		return err
	})

	validAddress := func(v prefs.Value) error {
		_, err := ParseAddress(fmt.Sprint(v))
		return err
	}
	p.FunctionScanStartAddress.SetHookPre(validAddress)
	p.FunctionScanEndAddress.SetHookPre(validAddress)

	p.Refresh()

	if p.Visible().SymbolFiles {
		prefs.ReadArray(store, ExtraSymbolFilesSection, func(section string) {
			p.files = append(p.files, store.GetString(section, KeyPath, ""))
		})
	}

	return p, nil
}

// Policy returns the DefaultPolicy used for symbol sources that the user has
// not made a choice for.
func (p *Panel) Policy() symbols.DefaultPolicy {
	return p.cfg.Policy
}

// Mode returns the Mode the panel was created with.
func (p *Panel) Mode() Mode {
	return p.cfg.Mode
}

// Visible returns the visibility of the optional parts of the panel. Symbol
// sources, extra symbol files and the custom address range only make sense
// for a specific game.
func (p *Panel) Visible() Visibility {
	perGame := p.cfg.Mode != GlobalSettings
	return Visibility{
		SymbolSources: perGame,
		SymbolFiles:   perGame,
		CustomRange:   perGame,
	}
}

// Enabled returns the enabled state of the dependent parts of the panel.
func (p *Panel) Enabled() Enabled {
	return Enabled{
		SymbolSources:      !p.AutomaticallySelectSymbolsToClear.Get().(bool),
		DemangleParameters: p.DemangleSymbols.Get().(bool),
		AddressRange:       p.CustomFunctionScanRange.Get().(bool),
	}
}

// Help returns the help text for the option. The ok value is false if the
// option is not visible.
func (p *Panel) Help(opt Option) (HelpText, bool) {
	vis := p.Visible()
	switch opt {
	case OptAutomaticallySelectSymbolsToClear:
		if !vis.SymbolSources {
			return HelpText{}, false
		}
	case OptCustomFunctionScanRange:
		if !vis.CustomRange {
			return HelpText{}, false
		}
	}
	h, ok := help[opt]
	return h, ok
}

// Refresh rebuilds the symbol source grid from the persisted choices and the
// sources currently in the live database.
func (p *Panel) Refresh() {
	if !p.Visible().SymbolSources {
		p.grid = GridHidden
		return
	}

	if p.cfg.Mode != Standalone && p.cfg.Serial != p.cfg.RunningSerial {
		p.sources.Rebuild(nil, nil)
		p.grid = GridGameNotRunning
		return
	}

	var persisted []symbols.SourceSetting
	prefs.ReadArray(p.store, SymbolSourcesSection, func(section string) {
		persisted = append(persisted, symbols.SourceSetting{
			Name:                p.store.GetString(section, KeyName, ""),
			ClearDuringAnalysis: p.store.GetBool(section, KeyClearDuringAnalysis, false),
		})
	})

	p.sources.Rebuild(persisted, symbols.LiveSourceNames(p.cfg.Database))

	if p.sources.Empty() {
		p.grid = GridEmpty
	} else {
		p.grid = GridReady
	}
}

// Grid returns the state of the symbol source grid.
func (p *Panel) Grid() GridState {
	return p.grid
}

// Sources returns the entries in the symbol source grid.
func (p *Panel) Sources() []symbols.SourceEntry {
	return p.sources.Entries()
}

// ToggleSource sets whether the named symbol source should be cleared during
// analysis. The choices made by the user are saved immediately. Unknown names
// are ignored.
func (p *Panel) ToggleSource(name string, value bool) error {
	if _, ok := p.sources.Entry(name); !ok {
		return nil
	}
	p.sources.Toggle(name, value)
	return p.saveSymbolSources()
}

func (p *Panel) saveSymbolSources() error {
	if p.cfg.Mode == Standalone {
		return nil
	}

	persist := p.sources.Persist()
	err := prefs.WriteArray(p.store, SymbolSourcesSection, len(persist), func(i int, section string) error {
		if err := p.store.SetString(section, KeyName, persist[i].Name); err != nil {
			return err
		}
		return p.store.SetBool(section, KeyClearDuringAnalysis, persist[i].ClearDuringAnalysis)
	})
	if err != nil {
		logger.Logf(logger.Allow, "analysis", "saving symbol sources: %v", err)
		return fmt.Errorf("analysis: %w", err)
	}

	return p.save()
}

// Dump writes a graphviz description of the symbol source reconciler to the
// io.Writer.
func (p *Panel) Dump(w io.Writer) {
	memviz.Map(w, p.sources)
}

// SymbolFiles returns a copy of the list of extra symbol files.
func (p *Panel) SymbolFiles() []string {
	f := make([]string, len(p.files))
	copy(f, p.files)
	return f
}

// AddSymbolFile adds a file to the list of extra symbol files and saves the
// list. An empty path is ignored.
func (p *Panel) AddSymbolFile(path string) error {
	if !p.Visible().SymbolFiles {
		return fmt.Errorf("%w: symbol files in %s", NotAvailable, p.cfg.Mode)
	}
	if path == "" {
		return nil
	}
	p.files = append(p.files, filepath.FromSlash(path))
	return p.saveSymbolFiles()
}

// RemoveSymbolFiles removes the files at the indices from the list of extra
// symbol files and saves the list. Indices that are out of range are ignored.
func (p *Panel) RemoveSymbolFiles(indices ...int) error {
	if !p.Visible().SymbolFiles {
		return fmt.Errorf("%w: symbol files in %s", NotAvailable, p.cfg.Mode)
	}

	remove := make(map[int]bool, len(indices))
	for _, i := range indices {
		remove[i] = true
	}

	files := make([]string, 0, len(p.files))
	for i, f := range p.files {
		if !remove[i] {
			files = append(files, f)
		}
	}
	p.files = files

	return p.saveSymbolFiles()
}

func (p *Panel) saveSymbolFiles() error {
	if p.cfg.Mode == Standalone {
		return nil
	}

	err := prefs.WriteArray(p.store, ExtraSymbolFilesSection, len(p.files), func(i int, section string) error {
		return p.store.SetString(section, KeyPath, p.files[i])
	})
	if err != nil {
		logger.Logf(logger.Allow, "analysis", "saving symbol files: %v", err)
		return fmt.Errorf("analysis: %w", err)
	}

	if err := p.save(); err != nil {
		return err
	}

	if p.cfg.Reload != nil {
		p.cfg.Reload()
	}

	return nil
}

// SetFunctionScanRange sets the start and end addresses of the custom function
// scan range. Each address is only changed if it is a valid 32 bit
// hexadecimal number. An invalid address is not an error.
func (p *Panel) SetFunctionScanRange(start string, end string) error {
	if !p.Visible().CustomRange {
		return fmt.Errorf("%w: custom address range in %s", NotAvailable, p.cfg.Mode)
	}

	if err := p.FunctionScanStartAddress.Set(start); err != nil && !errors.Is(err, InvalidAddress) {
		return err
	}
	if err := p.FunctionScanEndAddress.Set(end); err != nil && !errors.Is(err, InvalidAddress) {
		return err
	}

	return nil
}

// ScanMode returns the current function scan mode. An unrecognised value in
// the store is treated as ScanELF.
func (p *Panel) ScanMode() ScanMode {
	m, err := ParseScanMode(p.FunctionScanMode.String())
	if err != nil {
		return ScanELF
	}
	return m
}

// SetFunctionScanMode sets the function scan mode by name. Returns an error
// wrapping UnknownScanMode if the name is not recognised.
func (p *Panel) SetFunctionScanMode(name string) error {
	m, err := ParseScanMode(name)
	if err != nil {
		return err
	}
	return p.FunctionScanMode.Set(m.String())
}

// Options returns the current value of every option.
func (p *Panel) Options() Options {
	opts := Options{
		AutomaticallySelectSymbolsToClear: p.AutomaticallySelectSymbolsToClear.Get().(bool),
		ImportSymbolsFromELF:              p.ImportSymbolsFromELF.Get().(bool),
		ImportSymFileFromDefaultLocation:  p.ImportSymFileFromDefaultLocation.Get().(bool),
		DemangleSymbols:                   p.DemangleSymbols.Get().(bool),
		DemangleParameters:                p.DemangleParameters.Get().(bool),
		ExtraSymbolFiles:                  p.SymbolFiles(),
		FunctionScanMode:                  p.ScanMode(),
		CustomFunctionScanRange:           p.CustomFunctionScanRange.Get().(bool),
		FunctionScanStartAddress:          p.FunctionScanStartAddress.String(),
		FunctionScanEndAddress:            p.FunctionScanEndAddress.String(),
		GenerateFunctionHashes:            p.GenerateFunctionHashes.Get().(bool),
	}

	for _, e := range p.sources.Entries() {
		opts.SymbolSources = append(opts.SymbolSources, symbols.SourceSetting{
			Name:                e.Name,
			ClearDuringAnalysis: e.ClearDuringAnalysis,
		})
	}

	return opts
}

// save commits the store.
func (p *Panel) save() error {
	if err := p.store.Save(); err != nil {
		logger.Logf(logger.Allow, "analysis", "saving settings: %v", err)
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// commit is called after a bound option has been changed. An error is
// returned by the Set() function of the option.
func (p *Panel) commit() error {
	return p.save()
}
