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

// absent is used as a default value to detect whether a key is present in a
// store. it can never be a legitimate value.
const absent = "\x00absent\x00"

// Layered is an implementation of the Store interface that places one store
// over another. It is used for per-game settings, which are layered over the
// global settings.
//
// The Get functions return the "effective" value: the value in the game store
// if it is present, otherwise the value in the global store. All writes go to
// the game store only.
type Layered struct {
	Game   Store
	Global Store
}

// NewLayered is the preferred method of initialisation for the Layered type.
func NewLayered(game Store, global Store) *Layered {
	return &Layered{
		Game:   game,
		Global: global,
	}
}

func (l *Layered) inGame(section string, key string) bool {
	return l.Game.GetString(section, key, absent) != absent
}

// GetBool implements the Store interface.
func (l *Layered) GetBool(section string, key string, def bool) bool {
	if l.inGame(section, key) {
		return l.Game.GetBool(section, key, def)
	}
	return l.Global.GetBool(section, key, def)
}

// GetString implements the Store interface.
func (l *Layered) GetString(section string, key string, def string) string {
	if l.inGame(section, key) {
		return l.Game.GetString(section, key, def)
	}
	return l.Global.GetString(section, key, def)
}

// GetInt implements the Store interface.
func (l *Layered) GetInt(section string, key string, def int) int {
	if l.inGame(section, key) {
		return l.Game.GetInt(section, key, def)
	}
	return l.Global.GetInt(section, key, def)
}

// SetBool implements the Store interface.
func (l *Layered) SetBool(section string, key string, value bool) error {
	return l.Game.SetBool(section, key, value)
}

// SetString implements the Store interface.
func (l *Layered) SetString(section string, key string, value string) error {
	return l.Game.SetString(section, key, value)
}

// SetInt implements the Store interface.
func (l *Layered) SetInt(section string, key string, value int) error {
	return l.Game.SetInt(section, key, value)
}

// RemoveSection implements the Store interface. Only the game store is
// affected.
func (l *Layered) RemoveSection(section string) error {
	return l.Game.RemoveSection(section)
}

// Save implements the Store interface. Only the game store is saved.
func (l *Layered) Save() error {
	return l.Game.Save()
}
