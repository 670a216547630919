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

package prefs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Memory is an implementation of the Store interface that keeps all values in
// memory. It is the basis of the Disk type and is also useful on its own for
// the standalone panel and for testing.
type Memory struct {
	crit     sync.Mutex
	sections map[string]map[string]string
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		sections: make(map[string]map[string]string),
	}
}

func (m *Memory) String() string {
	m.crit.Lock()
	defer m.crit.Unlock()

	s := strings.Builder{}
	for _, k := range m.keys() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, m.value(k)))
	}
	return s.String()
}

// keys returns the sorted list of all keys in the store in the form
// "section.key". must be called from within the critical section.
func (m *Memory) keys() []string {
	k := make([]string, 0, len(m.sections))
	for section, values := range m.sections {
		for key := range values {
			k = append(k, fmt.Sprintf("%s.%s", section, key))
		}
	}
	sort.Strings(k)
	return k
}

// value returns the value for a key as returned by keys(). must be called
// from within the critical section.
func (m *Memory) value(k string) string {
	section, key := splitKey(k)
	return m.sections[section][key]
}

// splitKey divides a "section.key" string. keys never contain a period but
// section names might.
func splitKey(k string) (string, string) {
	i := strings.LastIndex(k, ".")
	if i == -1 {
		return "", k
	}
	return k[:i], k[i+1:]
}

func (m *Memory) get(section string, key string) (string, bool) {
	m.crit.Lock()
	defer m.crit.Unlock()

	values, ok := m.sections[section]
	if !ok {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (m *Memory) set(section string, key string, value string) error {
	if strings.Contains(key, ".") {
		return fmt.Errorf("prefs: key names cannot contain a period (%s)", key)
	}

	m.crit.Lock()
	defer m.crit.Unlock()

	values, ok := m.sections[section]
	if !ok {
		values = make(map[string]string)
		m.sections[section] = values
	}
	values[key] = value
	return nil
}

func (m *Memory) remove(section string, key string) {
	m.crit.Lock()
	defer m.crit.Unlock()

	values, ok := m.sections[section]
	if !ok {
		return
	}
	delete(values, key)
	if len(values) == 0 {
		delete(m.sections, section)
	}
}

// Has returns true if the key exists in the section.
func (m *Memory) Has(section string, key string) bool {
	_, ok := m.get(section, key)
	return ok
}

// GetBool implements the Store interface.
func (m *Memory) GetBool(section string, key string, def bool) bool {
	v, ok := m.get(section, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// GetString implements the Store interface.
func (m *Memory) GetString(section string, key string, def string) string {
	v, ok := m.get(section, key)
	if !ok {
		return def
	}
	return v
}

// GetInt implements the Store interface.
func (m *Memory) GetInt(section string, key string, def int) int {
	v, ok := m.get(section, key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// SetBool implements the Store interface.
func (m *Memory) SetBool(section string, key string, value bool) error {
	return m.set(section, key, strconv.FormatBool(value))
}

// SetString implements the Store interface.
func (m *Memory) SetString(section string, key string, value string) error {
	return m.set(section, key, value)
}

// SetInt implements the Store interface.
func (m *Memory) SetInt(section string, key string, value int) error {
	return m.set(section, key, strconv.Itoa(value))
}

// RemoveSection implements the Store interface.
func (m *Memory) RemoveSection(section string) error {
	m.crit.Lock()
	defer m.crit.Unlock()
	delete(m.sections, section)
	return nil
}

// Save implements the Store interface. Memory has nothing to commit.
func (m *Memory) Save() error {
	return nil
}

// Clear removes every section from the store.
func (m *Memory) Clear() {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.sections = make(map[string]map[string]string)
}
