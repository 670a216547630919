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

// Package terminal is an interactive rendition of the analysis settings panel
// for posix terminals. Each option is assigned a key and pressing the key
// changes the option.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/symanalysis/analysis"
	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/prefs"
	"github.com/jetsetilly/symanalysis/terminal/easyterm"
	"github.com/jetsetilly/symanalysis/terminal/easyterm/ansi"
)

func check(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

func disabled(enabled bool) string {
	if enabled {
		return ""
	}
	return " (disabled)"
}

func title(p *analysis.Panel, opt analysis.Option) string {
	h, _ := p.Help(opt)
	return h.Title
}

func value(b *prefs.Bool) bool {
	return b.Get().(bool)
}

// Render writes the current state of the panel to the io.Writer. Only the
// visible parts of the panel are written.
func Render(w io.Writer, p *analysis.Panel) {
	vis := p.Visible()
	en := p.Enabled()

	s := &strings.Builder{}

	fmt.Fprintf(s, "Debug Analysis Settings (%s)\n", p.Mode())

	if vis.SymbolSources {
		s.WriteString("\nClear Existing Symbols\n")
		fmt.Fprintf(s, "  [a] %s %s\n", check(value(&p.AutomaticallySelectSymbolsToClear)),
			title(p, analysis.OptAutomaticallySelectSymbolsToClear))

		switch p.Grid() {
		case analysis.GridReady:
			for i, e := range p.Sources() {
				key := " "
				if i < 9 {
					key = fmt.Sprintf("%d", i+1)
				}
				fmt.Fprintf(s, "      [%s] %s %s%s\n", key, check(e.ClearDuringAnalysis), e.Name, disabled(en.SymbolSources))
			}
		default:
			fmt.Fprintf(s, "      %s%s\n", p.Grid().Message(), disabled(en.SymbolSources))
		}
	}

	s.WriteString("\nImport Settings\n")
	fmt.Fprintf(s, "  [e] %s %s\n", check(value(&p.ImportSymbolsFromELF)), title(p, analysis.OptImportSymbolsFromELF))
	fmt.Fprintf(s, "  [s] %s %s\n", check(value(&p.ImportSymFileFromDefaultLocation)), title(p, analysis.OptImportSymFileFromDefaultLocation))
	fmt.Fprintf(s, "  [d] %s %s\n", check(value(&p.DemangleSymbols)), title(p, analysis.OptDemangleSymbols))
	fmt.Fprintf(s, "  [p] %s %s%s\n", check(value(&p.DemangleParameters)), title(p, analysis.OptDemangleParameters),
		disabled(en.DemangleParameters))

	if vis.SymbolFiles {
		s.WriteString("\nExtra Symbol Files\n")
		files := p.SymbolFiles()
		if len(files) == 0 {
			s.WriteString("      none\n")
		}
		for i, f := range files {
			fmt.Fprintf(s, "      %d. %s\n", i+1, f)
		}
	}

	s.WriteString("\nFunction Scan Settings\n")
	fmt.Fprintf(s, "  [m] %s: %s\n", title(p, analysis.OptFunctionScanMode), p.ScanMode().Label())
	if vis.CustomRange {
		fmt.Fprintf(s, "  [c] %s %s\n", check(value(&p.CustomFunctionScanRange)), title(p, analysis.OptCustomFunctionScanRange))
		fmt.Fprintf(s, "      Start: %s End: %s%s\n", p.FunctionScanStartAddress.String(), p.FunctionScanEndAddress.String(),
			disabled(en.AddressRange))
	}
	fmt.Fprintf(s, "  [g] %s %s\n", check(value(&p.GenerateFunctionHashes)), title(p, analysis.OptGenerateFunctionHashes))

	s.WriteString("\n")
	if vis.SymbolFiles {
		s.WriteString("[x] remove last symbol file  ")
	}
	s.WriteString("[q] quit\n")

	io.WriteString(w, s.String())
}

func toggle(b *prefs.Bool) error {
	return b.Set(!value(b))
}

// HandleKey changes the panel according to the key. Keys for options that are
// hidden or disabled are ignored. Returns true if the key is a request to
// quit.
func HandleKey(p *analysis.Panel, key byte) (bool, error) {
	vis := p.Visible()
	en := p.Enabled()

	switch key {
	case 'q', 'Q', easyterm.KeyEsc, easyterm.KeyInterrupt:
		return true, nil
	case 'a':
		if vis.SymbolSources {
			return false, toggle(&p.AutomaticallySelectSymbolsToClear)
		}
	case 'e':
		return false, toggle(&p.ImportSymbolsFromELF)
	case 's':
		return false, toggle(&p.ImportSymFileFromDefaultLocation)
	case 'd':
		return false, toggle(&p.DemangleSymbols)
	case 'p':
		if en.DemangleParameters {
			return false, toggle(&p.DemangleParameters)
		}
	case 'm':
		return false, p.SetFunctionScanMode(p.ScanMode().Next().String())
	case 'c':
		if vis.CustomRange {
			return false, toggle(&p.CustomFunctionScanRange)
		}
	case 'g':
		return false, toggle(&p.GenerateFunctionHashes)
	case 'x':
		if vis.SymbolFiles {
			if n := len(p.SymbolFiles()); n > 0 {
				return false, p.RemoveSymbolFiles(n - 1)
			}
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if !vis.SymbolSources || !en.SymbolSources || p.Grid() != analysis.GridReady {
			break // switch
		}
		sources := p.Sources()
		i := int(key - '1')
		if i < len(sources) {
			return false, p.ToggleSource(sources[i].Name, !sources[i].ClearDuringAnalysis)
		}
	}

	return false, nil
}

// lastLogEntry returns the most recent log entry cropped to the width of the
// terminal. A width of zero or less means the width is unknown.
func lastLogEntry(width int) string {
	s := &strings.Builder{}
	logger.Tail(s, 1)

	e := strings.TrimRight(s.String(), "\n")
	if width > 0 && len(e) > width {
		e = e[:width]
	}
	if e == "" {
		return ""
	}
	return e + "\n"
}

// Run the panel interactively in the terminal until the user quits. The
// terminal is put into raw mode for the duration.
func Run(p *analysis.Panel, input *os.File, output *os.File) error {
	var term easyterm.Terminal
	if err := term.Initialise(input, output); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer term.CleanUp()

	term.RawMode()
	term.Print(ansi.CursorHide)
	defer term.Print(ansi.CursorShow)

	for {
		term.Print(ansi.ClearScreen)
		Render(&term, p)

		// the most recent log entry is shown so that errors are not lost
		io.WriteString(&term, "\n")
		io.WriteString(&term, lastLogEntry(term.Geometry().Cols))

		key, err := term.ReadKey()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}

		if key == easyterm.KeySuspend {
			term.CanonicalMode()
			if err := easyterm.SuspendProcess(); err != nil {
				logger.Log(logger.Allow, "terminal", err)
			}
			term.RawMode()

			// discard anything typed while the process was suspended
			if err := term.Flush(); err != nil {
				logger.Log(logger.Allow, "terminal", err)
			}
			continue // for loop
		}

		quit, err := HandleKey(p, key)
		if err != nil {
			logger.Log(logger.Allow, "terminal", err)
		}
		if quit {
			term.Print(ansi.ClearScreen)
			return nil
		}
	}
}
