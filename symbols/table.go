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

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is a single named address.
type Symbol struct {
	Address uint32
	Name    string
}

// Source is a named collection of symbols. Symbols are indexed by address and
// are kept sorted.
type Source struct {
	name string

	// indexed by address
	entries map[uint32]string

	// sorted index of keys in entries
	idx []uint32

	// the longest symbol in the entries map
	maxWidth int
}

func newSource(name string) *Source {
	return &Source{
		name:    name,
		entries: make(map[uint32]string),
		idx:     make([]uint32, 0),
	}
}

// Name returns the name of the symbol source.
func (src *Source) Name() string {
	return src.name
}

func (src *Source) String() string {
	s := strings.Builder{}
	for _, a := range src.idx {
		s.WriteString(fmt.Sprintf("0x%08x -> %s\n", a, src.entries[a]))
	}
	return s.String()
}

// Len returns the number of symbols in the source.
func (src *Source) Len() int {
	return len(src.idx)
}

// MaxWidth returns the length of the longest symbol name.
func (src *Source) MaxWidth() int {
	return src.maxWidth
}

// Add a symbol to the source. If there is already a symbol at the address
// then it is only replaced if prefer is true.
func (src *Source) Add(addr uint32, symbol string, prefer bool) {
	if _, ok := src.entries[addr]; ok {
		if !prefer {
			return
		}
	} else {
		i := sort.Search(len(src.idx), func(i int) bool {
			return src.idx[i] >= addr
		})
		src.idx = append(src.idx, 0)
		copy(src.idx[i+1:], src.idx[i:])
		src.idx[i] = addr
	}

	src.entries[addr] = symbol
	if len(symbol) > src.maxWidth {
		src.maxWidth = len(symbol)
	}
}

// Symbols returns a copy of every symbol sorted by address.
func (src *Source) Symbols() []Symbol {
	s := make([]Symbol, 0, len(src.idx))
	for _, a := range src.idx {
		s = append(s, Symbol{Address: a, Name: src.entries[a]})
	}
	return s
}

// Search for the symbol. Matching is case-insensitive.
func (src *Source) Search(symbol string) (uint32, bool) {
	for _, a := range src.idx {
		if strings.EqualFold(src.entries[a], symbol) {
			return a, true
		}
	}
	return 0, false
}

// clear removes all symbols from the source.
func (src *Source) clear() {
	src.entries = make(map[uint32]string)
	src.idx = src.idx[:0]
	src.maxWidth = 0
}
