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

package version

import (
	"runtime/debug"
	"testing"

	"github.com/jetsetilly/symanalysis/test"
)

func TestFromBuildInfo(t *testing.T) {
	info := fromBuildInfo(nil, "")
	test.ExpectEquality(t, info.Version, "local")
	test.ExpectEquality(t, info.Revision, "no revision information")
	test.ExpectFailure(t, info.Release)
	test.ExpectEquality(t, info.String(), "symanalysis local (no revision information)")

	bi := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	info = fromBuildInfo(bi, "")
	test.ExpectEquality(t, info.Version, "unreleased")
	test.ExpectEquality(t, info.Revision, "abc123+dirty")

	info = fromBuildInfo(bi, "v0.1.0")
	test.ExpectSuccess(t, info.Release)
	test.ExpectEquality(t, info.String(), "symanalysis v0.1.0")
}
