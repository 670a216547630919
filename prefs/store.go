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

// Package prefs provides the storage for settings and typed values that can
// be bound to a store.
//
// The Store interface is implemented by Memory, Disk, Layered and Overrides
// in this package and by the sqlstore and redisstore sub-packages.
package prefs

// Store is the key/value storage used by the settings panels. Values are
// addressed by a section name and a key within that section. Section names
// are paths separated with '/', for example "Debugger/Analysis".
//
// The Get functions never fail. A missing key, or a key whose value cannot be
// converted to the requested type, results in the default value being
// returned. Errors encountered by storage backends on read should be logged
// by the backend.
type Store interface {
	GetBool(section string, key string, def bool) bool
	GetString(section string, key string, def string) string
	GetInt(section string, key string, def int) int

	SetBool(section string, key string, value bool) error
	SetString(section string, key string, value string) error
	SetInt(section string, key string, value int) error

	// RemoveSection removes all keys in the named section. Sections nested
	// under the named section are not affected.
	RemoveSection(section string) error

	// Save commits any pending changes. Stores that write through
	// immediately can return nil.
	Save() error
}
