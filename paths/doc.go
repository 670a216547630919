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

// Package paths contains functions to prepare paths to symanalysis resources,
// such as the global preferences file and the settings files for individual
// games.
//
// The ResourcePath() function returns the supplied resource prepended with
// the appropriate config directory. For example, the following will return
// the path to the settings for a game.
//
//	d, err := paths.ResourcePath("gamesettings", "SLUS-20312")
//
// The development version uses a directory named ".symanalysis" in the
// current working directory. The release version (built with the "release"
// tag) uses a directory named "symanalysis" in the user's config directory,
// as returned by os.UserConfigDir(). In the example above, on a modern Linux
// system, the path returned by the release version will be:
//
//	/home/user/.config/symanalysis/gamesettings/SLUS-20312
//
// In both cases the directories are created if necessary. The file itself is
// not.
package paths
