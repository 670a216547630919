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

// Package analysis is the model for the debug analysis settings. It binds the
// analysis options to a settings store, maintains the symbol source grid and
// the list of extra symbol files, and imports symbols into the live symbol
// database according to the options.
//
// The Panel type is the settings model. It is front end agnostic; the
// terminal package is one rendition of it. The Options type is the complete
// projection of the panel and is the input to Import().
package analysis
