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

package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ResourcePath returns the resource file prepended with the path to the
// resource directory. The directory is created if it does not exist.
//
// The resource file can be empty, in which case the path to the directory is
// returned.
func ResourcePath(subPth string, file string) (string, error) {
	pth, err := getBasePath(subPth)
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}
	return filepath.Join(pth, file), nil
}

// GameSettings returns the path to the settings file for the game with the
// serial. Characters that would be awkward in a filename are replaced.
func GameSettings(serial string) (string, error) {
	s := strings.TrimSpace(serial)
	if s == "" {
		return "", errors.New("paths: game settings require a serial")
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
	return ResourcePath("gamesettings", s)
}
