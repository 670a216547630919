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

package analysis

// Option identifies one of the options shown by the panel.
type Option int

// List of valid Option values.
const (
	OptAutomaticallySelectSymbolsToClear Option = iota
	OptImportSymbolsFromELF
	OptImportSymFileFromDefaultLocation
	OptDemangleSymbols
	OptDemangleParameters
	OptFunctionScanMode
	OptCustomFunctionScanRange
	OptGenerateFunctionHashes
)

// HelpText describes an option to the user.
type HelpText struct {
	Title   string
	Default string
	Text    string
}

var help = map[Option]HelpText{
	OptAutomaticallySelectSymbolsToClear: {
		Title:   "Automatically Select Symbols To Clear",
		Default: "Checked",
		Text:    "Automatically delete symbols that were generated by any previous analysis runs.",
	},
	OptImportSymbolsFromELF: {
		Title:   "Import From ELF",
		Default: "Checked",
		Text:    "Import symbol tables stored in the game's boot ELF.",
	},
	OptImportSymFileFromDefaultLocation: {
		Title:   "Import Default .sym File",
		Default: "Checked",
		Text:    "Import symbols from a .sym file with the same name as the loaded ISO file on disk if such a file exists.",
	},
	OptDemangleSymbols: {
		Title:   "Demangle Symbols",
		Default: "Checked",
		Text: "Demangle C++ symbols during the import process so that the function and global variable names shown " +
			"in the debugger are more readable.",
	},
	OptDemangleParameters: {
		Title:   "Demangle Parameters",
		Default: "Checked",
		Text:    "Include parameter lists in demangled function names.",
	},
	OptFunctionScanMode: {
		Title:   "Scan Mode",
		Default: "Scan ELF",
		Text: "Choose where the function scanner looks to find functions. This option can be useful if the " +
			"application loads additional code at runtime.",
	},
	OptCustomFunctionScanRange: {
		Title:   "Custom Address Range",
		Default: "Unchecked",
		Text: "Whether to look for functions from the address range specified (Checked), or from the ELF segment " +
			"containing the entry point (Unchecked).",
	},
	OptGenerateFunctionHashes: {
		Title:   "Gray Out Symbols For Overwritten Functions",
		Default: "Checked",
		Text: "Generate hashes for all the detected functions, and gray out the symbols displayed in the debugger " +
			"for functions that no longer match.",
	},
}
