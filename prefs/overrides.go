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

package prefs

import (
	"fmt"
	"strings"
)

// separator between key and value in an overrides string.
const overrideSeparator = "::"

// Overrides is an implementation of the Store interface that places values
// given on the command line over another store. Overrides are returned by the
// Get functions but are never written to the underlying store. Setting a
// value removes any override for that key.
//
// Overrides should be the outermost store so that it takes precedence over
// any layering of game and global settings.
type Overrides struct {
	Store
	values *Memory
}

// NewOverrides is the preferred method of initialisation for the Overrides
// type. The prefs string is a list of section.key::value pairs separated by
// semi-colons. For example:
//
//	Debugger/Analysis.DemangleSymbols::false; Debugger/Analysis.FunctionScanMode::Skip
//
// Empty entries are ignored. An entry that cannot be interpreted is an error.
func NewOverrides(store Store, prefs string) (*Overrides, error) {
	o := &Overrides{
		Store:  store,
		values: NewMemory(),
	}

	for _, p := range strings.Split(prefs, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue // for loop
		}

		k, v, ok := strings.Cut(p, overrideSeparator)
		if !ok {
			return nil, fmt.Errorf("prefs: override has no value: %q", p)
		}

		section, key := splitKey(strings.TrimSpace(k))
		if section == "" || key == "" {
			return nil, fmt.Errorf("prefs: override must be of the form section.key: %q", p)
		}

		if err := o.values.set(section, key, strings.TrimSpace(v)); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// String returns the overrides that are still in effect.
func (o *Overrides) String() string {
	return o.values.String()
}

// GetBool implements the Store interface.
func (o *Overrides) GetBool(section string, key string, def bool) bool {
	if o.values.Has(section, key) {
		return o.values.GetBool(section, key, def)
	}
	return o.Store.GetBool(section, key, def)
}

// GetString implements the Store interface.
func (o *Overrides) GetString(section string, key string, def string) string {
	if o.values.Has(section, key) {
		return o.values.GetString(section, key, def)
	}
	return o.Store.GetString(section, key, def)
}

// GetInt implements the Store interface.
func (o *Overrides) GetInt(section string, key string, def int) int {
	if o.values.Has(section, key) {
		return o.values.GetInt(section, key, def)
	}
	return o.Store.GetInt(section, key, def)
}

// SetBool implements the Store interface.
func (o *Overrides) SetBool(section string, key string, value bool) error {
	o.values.remove(section, key)
	return o.Store.SetBool(section, key, value)
}

// SetString implements the Store interface.
func (o *Overrides) SetString(section string, key string, value string) error {
	o.values.remove(section, key)
	return o.Store.SetString(section, key, value)
}

// SetInt implements the Store interface.
func (o *Overrides) SetInt(section string, key string, value int) error {
	o.values.remove(section, key)
	return o.Store.SetInt(section, key, value)
}

// RemoveSection implements the Store interface.
func (o *Overrides) RemoveSection(section string) error {
	_ = o.values.RemoveSection(section)
	return o.Store.RemoveSection(section)
}
