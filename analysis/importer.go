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
	"path/filepath"

	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/symbols"
)

// Inputs to the importer.
type Inputs struct {
	// path to the boot ELF of the game. can be empty
	ELF string

	// path to the game image. the default .sym file is found relative to
	// this. can be empty
	Image string

	// the policy that decides which sources are cleared when symbols to
	// clear are selected automatically. ClearByDefault() is used if nil
	Policy symbols.DefaultPolicy
}

// Import applies the options to the live symbol database. Symbol sources are
// cleared as required and then symbols are imported from the ELF file, the
// default .sym file and the extra symbol files.
//
// A file that can't be read is logged and skipped. Returns the number of
// symbols imported.
func Import(g *symbols.Guardian, opts Options, in Inputs) int {
	n := 0

	g.ReadWrite(func(db *symbols.Database) {
		clearSources(db, opts, in.Policy)

		if opts.ImportSymbolsFromELF && in.ELF != "" {
			c, err := symbols.ReadELF(db, in.ELF)
			if err != nil {
				logger.Logf(logger.Allow, "analysis", "importing ELF: %v", err)
			}
			n += c
		}

		if opts.ImportSymFileFromDefaultLocation && in.Image != "" {
			c, err := symbols.ReadSymFile(db, symbols.DefaultSymFile(in.Image), symbols.NocashSymbols)
			if err != nil && !errors.Is(err, symbols.NoSymbolsFile) {
				logger.Logf(logger.Allow, "analysis", "importing default .sym file: %v", err)
			}
			n += c
		}

		for _, path := range opts.ExtraSymbolFiles {
			if path == "" {
				continue // for loop
			}
			c, err := symbols.ReadSymFile(db, path, filepath.Base(path))
			if err != nil {
				logger.Logf(logger.Allow, "analysis", "importing symbol file: %v", err)
			}
			n += c
		}
	})

	return n
}

func clearSources(db *symbols.Database, opts Options, policy symbols.DefaultPolicy) {
	if policy == nil {
		policy = symbols.ClearByDefault
	}

	if opts.AutomaticallySelectSymbolsToClear {
		for _, name := range db.SourceNames() {
			if name != symbols.BuiltIn && policy(name) {
				db.ClearSource(name)
			}
		}
		return
	}

	for _, s := range opts.SymbolSources {
		if s.Name != symbols.BuiltIn && s.ClearDuringAnalysis {
			db.ClearSource(s.Name)
		}
	}
}
