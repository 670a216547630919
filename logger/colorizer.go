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

package logger

import (
	"io"
	"strings"

	"github.com/jetsetilly/symanalysis/terminal/easyterm/ansi"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is printed in the tag pen and the detail in the normal pen.
type Colorizer struct {
	out io.Writer
	pen string
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type. The pen argument is one of the colour names used by the ansi package.
func NewColorizer(out io.Writer, pen string) Colorizer {
	return Colorizer{
		out: out,
		pen: ansi.DimPens[pen],
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		var s string
		if tag, detail, ok := strings.Cut(l, ": "); ok {
			s = c.pen + tag + ansi.NormalPen + ": " + detail + "\n"
		} else {
			s = l + "\n"
		}

		if _, err := io.WriteString(c.out, s); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
