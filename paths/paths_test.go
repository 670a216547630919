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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jetsetilly/symanalysis/paths"
	"github.com/jetsetilly/symanalysis/test"
)

func TestPaths(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".symanalysis", "foo", "bar", "baz"))

	// directory has been created
	info, err := os.Stat(filepath.Join(".symanalysis", "foo", "bar"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".symanalysis", "baz"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".symanalysis")
}

func TestGameSettings(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := paths.GameSettings("SLUS-20312")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".symanalysis", "gamesettings", "SLUS-20312"))

	pth, err = paths.GameSettings("SLUS/203 12")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".symanalysis", "gamesettings", "SLUS_203_12"))

	_, err = paths.GameSettings("  ")
	test.ExpectFailure(t, err)
}

func TestUniqueFilename(t *testing.T) {
	re := regexp.MustCompile(`^dump_SLUS-20312_\d{8}_\d{6}$`)
	test.ExpectSuccess(t, re.MatchString(paths.UniqueFilename("dump", "SLUS-20312")))

	re = regexp.MustCompile(`^dump_\d{8}_\d{6}$`)
	test.ExpectSuccess(t, re.MatchString(paths.UniqueFilename("dump", " ")))
}
