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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and then Parse()
// is called with no arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	store := md.AddString("store", "disk", "settings storage")
//	md.AddSubModes("SHOW", "EDIT", "TOGGLE")
//	_, _ = md.Parse()
//
// A mode is a special argument that follows the flags and puts the program
// into a different mode of operation. The first sub-mode given to
// AddSubModes() is the default mode, used when the first non-flag argument is
// not a sub-mode. Sub-mode comparisons are case insensitive and Mode() always
// returns the upper case name.
//
// After a mode has been selected, NewMode() starts a new layer of flags for
// the arguments that follow the mode:
//
//	switch md.Mode() {
//	case "TOGGLE":
//		md.NewMode()
//		md.AdditionalHelp("TOGGLE <source name> <true|false>")
//		p, err := md.Parse()
//		switch p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		toggle(md.GetArg(0), md.GetArg(1))
//	}
//
// Help is printed automatically when the -help flag is given. A short
// description of each sub-mode can be added with ModeHelp().
package modalflag
