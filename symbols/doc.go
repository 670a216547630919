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

// Package symbols holds the live symbol database and the reconciliation of
// symbol sources with the user's choices of which sources to clear before an
// analysis run.
//
// The database is made up of symbol sources. A symbol source is a named
// origin of symbols, for example the ELF symbol table or a .sym file. The
// database is owned by a Guardian, which controls access from different
// goroutines.
//
// The Reconciler merges the persisted "clear during analysis" choices with the
// sources currently present in the database. Only choices made by the user are
// ever persisted. Sources that the user has not expressed a preference for are
// given a default by a DefaultPolicy. The ClearByDefault() function is the
// usual policy.
package symbols
