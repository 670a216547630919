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
	"bufio"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// NoSymbolsFile is returned (wrapped) when a symbols file does not exist.
var NoSymbolsFile = errors.New("symbols: no symbols file")

// DefaultSymFile returns the name of the .sym file that accompanies a game
// image. The case of the extension follows the case of the image's extension.
func DefaultSymFile(imagePath string) string {
	ext := filepath.Ext(imagePath)
	base := imagePath[:len(imagePath)-len(ext)]
	if ext != "" && ext == strings.ToUpper(ext) {
		return fmt.Sprintf("%s.SYM", base)
	}
	return fmt.Sprintf("%s.sym", base)
}

func openSymbolsFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", NoSymbolsFile, path)
		}
		return nil, fmt.Errorf("symbols: %w", err)
	}
	return f, nil
}

// parseAddress accepts hexadecimal addresses with or without a 0x or $
// prefix.
func parseAddress(s string) (uint32, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")
	a, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(a), true
}

// ReadSymFile reads a .sym file and adds the symbols to the named source. The
// source is created if necessary. Returns the number of symbols read.
//
// Each line of the file is either "address name" or "name address" with the
// address in hexadecimal. Blank lines, comment lines and separator lines
// ("---") are ignored, as are lines that cannot be interpreted.
func ReadSymFile(db *Database, path string, source string) (int, error) {
	f, err := openSymbolsFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	src := db.AddSource(source)
	n := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p := strings.Fields(scanner.Text())
		if len(p) < 2 || p[0] == "---" || strings.HasPrefix(p[0], ";") || strings.HasPrefix(p[0], "#") {
			continue // for loop
		}

		var addr uint32
		var name string
		var ok bool

		if addr, ok = parseAddress(p[0]); ok {
			name = p[1]
		} else if addr, ok = parseAddress(p[1]); ok {
			name = p[0]
		} else {
			continue // for loop
		}

		src.Add(addr, name, true)
		n++
	}

	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("symbols: %s: %w", path, err)
	}

	return n, nil
}

// ReadELF reads the symbol table and the section headers of an ELF file. The
// symbol table is added to the ELFSymbolTable source and the section headers
// to the ELFSectionHeaders source. Returns the number of symbols read.
func ReadELF(db *Database, path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", NoSymbolsFile, path)
		}
		return 0, fmt.Errorf("symbols: %w", err)
	}

	f, err := elf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("symbols: %s: %w", path, err)
	}
	defer f.Close()

	n := 0

	syms, err := f.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return 0, fmt.Errorf("symbols: %s: %w", path, err)
	}

	if len(syms) > 0 {
		src := db.AddSource(ELFSymbolTable)
		for _, s := range syms {
			if s.Name == "" || s.Value == 0 {
				continue // for loop
			}
			switch elf.ST_TYPE(s.Info) {
			case elf.STT_FUNC, elf.STT_OBJECT, elf.STT_NOTYPE:
				src.Add(uint32(s.Value), s.Name, false)
				n++
			}
		}
	}

	var headers *Source
	for _, s := range f.Sections {
		if s.Name == "" || s.Addr == 0 {
			continue // for loop
		}
		if headers == nil {
			headers = db.AddSource(ELFSectionHeaders)
		}
		headers.Add(uint32(s.Addr), s.Name, false)
		n++
	}

	return n, nil
}
