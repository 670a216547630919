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

// CountKey is the key in the parent section of an indexed array that holds
// the number of items in the array.
const CountKey = "Count"

// ArrayItem returns the section name for item i of the indexed array in the
// parent section.
func ArrayItem(parent string, i int) string {
	return fmt.Sprintf("%s/%d", parent, i)
}

// ReadArray calls f for every item in the indexed array stored in the parent
// section. The section for each item is passed to f. The number of items is
// taken from the Count key of the parent section.
func ReadArray(store Store, parent string, f func(section string)) {
	n := store.GetInt(parent, CountKey, 0)
	for i := 0; i < n; i++ {
		f(ArrayItem(parent, i))
	}
}

// WriteArray replaces the indexed array stored in the parent section with a
// new array of count items. The function f is called for every item and
// should write the values for that item into the section it is given.
//
// The array is always rewritten in full. The sections of the existing array
// and the parent section are removed first. If count is zero nothing is
// written, not even a Count key.
func WriteArray(store Store, parent string, count int, f func(i int, section string) error) error {
	old := store.GetInt(parent, CountKey, 0)
	for i := 0; i < old; i++ {
		if err := store.RemoveSection(ArrayItem(parent, i)); err != nil {
			return err
		}
	}

	if err := store.RemoveSection(parent); err != nil {
		return err
	}

	if count <= 0 {
		return nil
	}

	if err := store.SetInt(parent, CountKey, count); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		if err := f(i, ArrayItem(parent, i)); err != nil {
			return err
		}
	}

	return nil
}
