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

package symbols

import (
	"sync"
)

// Names of the symbol sources created by the readers in this package.
const (
	ELFSymbolTable    = "ELF Symbol Table"
	ELFSectionHeaders = "ELF Section Headers"
	FunctionScanner   = "Function Scanner"
	NocashSymbols     = "Nocash Symbols"
)

// Database is the live symbol database. Sources are kept in the order they
// were added. The BuiltIn source is always present.
//
// Database is not safe for concurrent use. Access it through a Guardian.
type Database struct {
	sources []*Source
}

// NewDatabase is the preferred method of initialisation for the Database type.
func NewDatabase() *Database {
	db := &Database{}
	db.AddSource(BuiltIn)
	return db
}

// AddSource returns the named source, creating it if it doesn't exist.
func (db *Database) AddSource(name string) *Source {
	if src, ok := db.Source(name); ok {
		return src
	}
	src := newSource(name)
	db.sources = append(db.sources, src)
	return src
}

// Source returns the named source.
func (db *Database) Source(name string) (*Source, bool) {
	for _, src := range db.sources {
		if src.name == name {
			return src, true
		}
	}
	return nil, false
}

// ClearSource removes all symbols from the named source. The source itself
// remains in the database. Returns false if the source does not exist.
func (db *Database) ClearSource(name string) bool {
	src, ok := db.Source(name)
	if !ok {
		return false
	}
	src.clear()
	return true
}

// SourceNames returns the name of every source in the order they were added.
func (db *Database) SourceNames() []string {
	n := make([]string, 0, len(db.sources))
	for _, src := range db.sources {
		n = append(n, src.name)
	}
	return n
}

// Len returns the total number of symbols in the database.
func (db *Database) Len() int {
	n := 0
	for _, src := range db.sources {
		n += src.Len()
	}
	return n
}

// Guardian controls access to a Database from different goroutines.
type Guardian struct {
	crit sync.RWMutex
	db   *Database
}

// NewGuardian is the preferred method of initialisation for the Guardian type.
func NewGuardian() *Guardian {
	return &Guardian{
		db: NewDatabase(),
	}
}

// Read gives the function read-only access to the database. The lock is held
// only for the duration of the function. The function must not keep a
// reference to the database or any of its sources.
func (g *Guardian) Read(f func(db *Database)) {
	g.crit.RLock()
	defer g.crit.RUnlock()
	f(g.db)
}

// ReadWrite gives the function exclusive access to the database.
func (g *Guardian) ReadWrite(f func(db *Database)) {
	g.crit.Lock()
	defer g.crit.Unlock()
	f(g.db)
}

// LiveSourceNames returns a snapshot of the source names in the guarded
// database. A nil Guardian has no sources.
func LiveSourceNames(g *Guardian) []string {
	if g == nil {
		return nil
	}

	var names []string
	g.Read(func(db *Database) {
		names = db.SourceNames()
	})
	return names
}
