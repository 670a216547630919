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

package symbols

import "strings"

// sources that are regenerated by every analysis run and so are cleared by
// default.
var clearedByDefault = []string{
	ELFSectionHeaders,
	FunctionScanner,
	NocashSymbols,
}

// ClearByDefault is the DefaultPolicy used when the user has not said whether
// a symbol source should be cleared. Symbols from symbol tables and from the
// function scanner are regenerated by the next analysis so they are cleared.
// Everything else, including symbols added by hand, is kept.
func ClearByDefault(name string) bool {
	if strings.Contains(name, "Symbol Table") {
		return true
	}
	for _, n := range clearedByDefault {
		if name == n {
			return true
		}
	}
	return false
}
