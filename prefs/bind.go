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

import "fmt"

// Load sets the pref value to the value found in the store. The default value
// is used if the store does not have a value for the key. The type of def
// must match the type of the pref (bool for Bool and string for String).
//
// Changes to the pref value are not written back to the store. Use Bind() for
// that.
func Load(store Store, section string, key string, p Pref, def Value) error {
	var v Value

	switch p.(type) {
	case *Bool:
		d, ok := def.(bool)
		if !ok {
			return fmt.Errorf("prefs: default for %s.%s must be a bool", section, key)
		}
		v = store.GetBool(section, key, d)
	case *String:
		d, ok := def.(string)
		if !ok {
			return fmt.Errorf("prefs: default for %s.%s must be a string", section, key)
		}
		v = store.GetString(section, key, d)
	default:
		return fmt.Errorf("prefs: cannot load %T", p)
	}

	// the value is set without any hooks in place. this prevents the loaded
	// value being written back to the store
	p.SetHookPre(nil)
	p.SetHookPost(nil)

	return p.Set(v)
}

// Bind loads the pref value from the store (see Load()) and then arranges for
// every subsequent change to the pref value to be written to the store.
//
// The onChange function is called after the value has been written. It can
// be nil. An error returned by onChange is returned by the pref's Set().
//
// The post hook of the pref is used to implement the binding and should not
// be changed by the caller. The pre hook can be set after the call to Bind().
func Bind(store Store, section string, key string, p Pref, def Value, onChange func() error) error {
	if err := Load(store, section, key, p, def); err != nil {
		return err
	}

	p.SetHookPost(func(v Value) error {
		var err error

		switch v := v.(type) {
		case bool:
			err = store.SetBool(section, key, v)
		case string:
			err = store.SetString(section, key, v)
		default:
			err = fmt.Errorf("prefs: cannot store %T in %s.%s", v, section, key)
		}
		if err != nil {
			return err
		}

		if onChange != nil {
			return onChange()
		}

		return nil
	})

	return nil
}
