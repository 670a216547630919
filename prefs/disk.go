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
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPrefsFile is the default filename of the global preferences.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file while the program is running ***"

// separator between key and value in a preferences file.
const valueSeparator = " :: "

// NoPrefsFile is returned (wrapped) by Disk.Load() when the preferences file
// does not exist. This is not usually a problem and callers should check for
// it with errors.Is().
var NoPrefsFile = errors.New("prefs: no preferences file")

// Disk is an implementation of the Store interface that keeps values in
// memory and writes them to a file on Save().
type Disk struct {
	*Memory
	path string
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: disk requires a filename")
	}

	return &Disk{
		Memory: NewMemory(),
		path:   path,
	}, nil
}

func (dsk *Disk) String() string {
	return dsk.Memory.String()
}

// Path returns the filename used by the Disk instance.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Load values from disk, replacing any values currently held in memory.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", NoPrefsFile, dsk.path)
		}
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	dsk.Memory.Clear()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		ln := scanner.Text()

		// ignore boilerplate and blank lines
		if ln == WarningBoilerPlate || strings.TrimSpace(ln) == "" {
			continue // for loop
		}

		k, v, ok := strings.Cut(ln, valueSeparator)
		if !ok {
			continue // for loop
		}

		section, key := splitKey(strings.TrimSpace(k))
		if err := dsk.Memory.set(section, key, v); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Save implements the Store interface. All values currently in memory are
// written to disk, replacing the previous contents of the file.
func (dsk *Disk) Save() error {
	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")

	dsk.Memory.crit.Lock()
	for _, k := range dsk.Memory.keys() {
		s.WriteString(k)
		s.WriteString(valueSeparator)
		s.WriteString(dsk.Memory.value(k))
		s.WriteString("\n")
	}
	dsk.Memory.crit.Unlock()

	// write to a temporary file first so that a failed write doesn't destroy
	// the existing preferences
	tmp := fmt.Sprintf("%s.tmp", dsk.path)
	if err := os.WriteFile(tmp, []byte(s.String()), 0o600); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.Rename(tmp, dsk.path); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}
