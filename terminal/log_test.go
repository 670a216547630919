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

package terminal

import (
	"testing"

	"github.com/jetsetilly/symanalysis/logger"
	"github.com/jetsetilly/symanalysis/test"
)

func TestLastLogEntry(t *testing.T) {
	logger.Clear()
	test.ExpectEquality(t, lastLogEntry(80), "")

	logger.Log(logger.Allow, "terminal", "something went wrong")
	test.ExpectEquality(t, lastLogEntry(0), "terminal: something went wrong\n")
	test.ExpectEquality(t, lastLogEntry(80), "terminal: something went wrong\n")

	// cropped to the width of the terminal
	test.ExpectEquality(t, lastLogEntry(8), "terminal\n")
}
