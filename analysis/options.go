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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/symanalysis/symbols"
)

// Sections in the settings store used by the analysis settings.
const (
	Section                 = "Debugger/Analysis"
	SymbolSourcesSection    = "Debugger/Analysis/SymbolSources"
	ExtraSymbolFilesSection = "Debugger/Analysis/ExtraSymbolFiles"
)

// Keys in the Section section.
const (
	KeyAutomaticallySelectSymbolsToClear = "AutomaticallySelectSymbolsToClear"
	KeyImportSymbolsFromELF              = "ImportSymbolsFromELF"
	KeyImportSymFileFromDefaultLocation  = "ImportSymFileFromDefaultLocation"
	KeyDemangleSymbols                   = "DemangleSymbols"
	KeyDemangleParameters                = "DemangleParameters"
	KeyFunctionScanMode                  = "FunctionScanMode"
	KeyCustomFunctionScanRange           = "CustomFunctionScanRange"
	KeyFunctionScanStartAddress          = "FunctionScanStartAddress"
	KeyFunctionScanEndAddress            = "FunctionScanEndAddress"
	KeyGenerateFunctionHashes            = "GenerateFunctionHashes"
)

// Keys in the sections of the indexed arrays.
const (
	KeyName                = "Name"
	KeyClearDuringAnalysis = "ClearDuringAnalysis"
	KeyPath                = "Path"
)

// ScanMode says where the function scanner looks for functions.
type ScanMode int

// List of valid ScanMode values.
const (
	ScanELF ScanMode = iota
	ScanMemory
	Skip
)

// ScanModes lists every ScanMode in the order they should be presented.
var ScanModes = []ScanMode{ScanELF, ScanMemory, Skip}

var scanModeNames = []string{"ScanELF", "ScanMemory", "Skip"}

func (m ScanMode) String() string {
	if m < 0 || int(m) >= len(scanModeNames) {
		return fmt.Sprintf("ScanMode(%d)", int(m))
	}
	return scanModeNames[m]
}

// Label is a more readable version of String() for presentation.
func (m ScanMode) Label() string {
	switch m {
	case ScanELF:
		return "Scan ELF"
	case ScanMemory:
		return "Scan Memory"
	case Skip:
		return "Skip"
	}
	return m.String()
}

// Next returns the ScanMode that follows m, wrapping around after the last.
func (m ScanMode) Next() ScanMode {
	return ScanMode((int(m) + 1) % len(scanModeNames))
}

// UnknownScanMode is returned (wrapped) by ParseScanMode() when the name does
// not match any ScanMode.
var UnknownScanMode = errors.New("analysis: unknown function scan mode")

// ParseScanMode returns the ScanMode with the name. Matching is not case
// sensitive.
func ParseScanMode(name string) (ScanMode, error) {
	for i, n := range scanModeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return ScanMode(i), nil
		}
	}
	return ScanELF, fmt.Errorf("%w: %q", UnknownScanMode, name)
}

// InvalidAddress is returned (wrapped) when a function scan address is not a
// 32 bit hexadecimal number.
var InvalidAddress = errors.New("analysis: invalid address")

// ParseAddress parses a function scan address. The address is a hexadecimal
// number, with or without a 0x prefix, that fits in 32 bits.
func ParseAddress(s string) (uint32, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", InvalidAddress, s)
	}
	return uint32(v), nil
}

// Options is the complete set of analysis options. It is what the importer
// and the function scanner work from.
type Options struct {
	AutomaticallySelectSymbolsToClear bool

	// every symbol source known to the panel with the current
	// ClearDuringAnalysis value. not only the sources chosen by the user
	SymbolSources []symbols.SourceSetting

	ImportSymbolsFromELF             bool
	ImportSymFileFromDefaultLocation bool
	DemangleSymbols                  bool
	DemangleParameters               bool

	ExtraSymbolFiles []string

	FunctionScanMode         ScanMode
	CustomFunctionScanRange  bool
	FunctionScanStartAddress string
	FunctionScanEndAddress   string

	GenerateFunctionHashes bool
}

// DefaultOptions returns the Options used when nothing has been stored.
func DefaultOptions() Options {
	return Options{
		AutomaticallySelectSymbolsToClear: true,
		ImportSymbolsFromELF:              true,
		ImportSymFileFromDefaultLocation:  true,
		DemangleSymbols:                   true,
		DemangleParameters:                true,
		FunctionScanMode:                  ScanELF,
		CustomFunctionScanRange:           false,
		FunctionScanStartAddress:          "0",
		FunctionScanEndAddress:            "0",
		GenerateFunctionHashes:            true,
	}
}

// ScanRange returns the custom function scan range. The ok value is false if
// a custom range is not being used or if either address is invalid.
func (o Options) ScanRange() (start uint32, end uint32, ok bool) {
	if !o.CustomFunctionScanRange {
		return 0, 0, false
	}

	var err error
	if start, err = ParseAddress(o.FunctionScanStartAddress); err != nil {
		return 0, 0, false
	}
	if end, err = ParseAddress(o.FunctionScanEndAddress); err != nil {
		return 0, 0, false
	}

	return start, end, true
}
