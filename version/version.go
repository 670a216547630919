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

// Package version reports the version of the application, taken from the
// linker flags or from the build information embedded by the go tool.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "symanalysis"

// set by the linker for release builds
var number string

// Info about the build.
type Info struct {
	// the release number, "unreleased" if built from a repository or "local"
	// if no version control information is available
	Version string

	// the vcs revision, suffixed with "+dirty" if the source was modified
	Revision string

	// true if Version is a release number
	Release bool
}

// String returns a single line summary.
func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

// Version returns the Info for this binary.
func Version() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuildInfo(bi, number)
}

func fromBuildInfo(bi *debug.BuildInfo, release string) Info {
	var vcs bool
	var modified bool

	info := Info{Revision: "no revision information"}

	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if modified {
		info.Revision = fmt.Sprintf("%s+dirty", info.Revision)
	}

	switch {
	case release != "":
		info.Version = release
		info.Release = true
	case vcs:
		info.Version = "unreleased"
	default:
		info.Version = "local"
	}

	return info
}
