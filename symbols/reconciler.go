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

// BuiltIn is the name of the synthetic symbol source that holds the built-in
// symbols. It is never cleared and so never appears in a Reconciler.
const BuiltIn = "Built-In"

// SourceSetting is the persisted form of a user's choice for a symbol source.
type SourceSetting struct {
	Name                string
	ClearDuringAnalysis bool
}

// SourceEntry is a symbol source in the reconciled set.
type SourceEntry struct {
	Name string

	// whether symbols from this source should be cleared before analysis
	ClearDuringAnalysis bool

	// true if the value of ClearDuringAnalysis was chosen by the user. only
	// entries modified by the user are persisted
	ModifiedByUser bool
}

// DefaultPolicy returns the default ClearDuringAnalysis value for a symbol
// source that the user has not made a choice for.
type DefaultPolicy func(name string) bool

// Reconciler merges persisted symbol source choices with the sources
// currently in the live database.
//
// Entries are unique by name and are iterated in insertion order. The
// Reconciler is not safe for concurrent use.
type Reconciler struct {
	policy  DefaultPolicy
	entries map[string]*SourceEntry
	order   []string
}

// NewReconciler is the preferred method of initialisation for the Reconciler
// type. If policy is nil then ClearByDefault() is used.
func NewReconciler(policy DefaultPolicy) *Reconciler {
	if policy == nil {
		policy = ClearByDefault
	}
	return &Reconciler{
		policy:  policy,
		entries: make(map[string]*SourceEntry),
	}
}

// Rebuild discards the current set of entries and builds a new one.
//
// Every persisted setting becomes an entry that is marked as modified by the
// user. Then every source name in live that is not already present becomes an
// entry with the value given by the default policy. The BuiltIn source and
// sources with no name are always excluded.
//
// If a name appears more than once in persisted then the last value is used
// but the entry keeps its original position.
func (r *Reconciler) Rebuild(persisted []SourceSetting, live []string) {
	r.entries = make(map[string]*SourceEntry)
	r.order = r.order[:0]

	for _, p := range persisted {
		if p.Name == "" || p.Name == BuiltIn {
			continue // for loop
		}

		if e, ok := r.entries[p.Name]; ok {
			e.ClearDuringAnalysis = p.ClearDuringAnalysis
			continue // for loop
		}

		r.insert(&SourceEntry{
			Name:                p.Name,
			ClearDuringAnalysis: p.ClearDuringAnalysis,
			ModifiedByUser:      true,
		})
	}

	for _, name := range live {
		if name == "" || name == BuiltIn {
			continue // for loop
		}

		if _, ok := r.entries[name]; ok {
			continue // for loop
		}

		r.insert(&SourceEntry{
			Name:                name,
			ClearDuringAnalysis: r.policy(name),
			ModifiedByUser:      false,
		})
	}
}

func (r *Reconciler) insert(e *SourceEntry) {
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
}

// Empty returns true if there are no entries. Callers should show an
// explanatory message rather than an empty selection.
func (r *Reconciler) Empty() bool {
	return len(r.order) == 0
}

// Len returns the number of entries.
func (r *Reconciler) Len() int {
	return len(r.order)
}

// Names returns the names of every entry in iteration order.
func (r *Reconciler) Names() []string {
	n := make([]string, len(r.order))
	copy(n, r.order)
	return n
}

// Entry returns a copy of the named entry.
func (r *Reconciler) Entry(name string) (SourceEntry, bool) {
	e, ok := r.entries[name]
	if !ok {
		return SourceEntry{}, false
	}
	return *e, true
}

// Entries returns a copy of every entry in iteration order.
func (r *Reconciler) Entries() []SourceEntry {
	s := make([]SourceEntry, 0, len(r.order))
	for _, n := range r.order {
		s = append(s, *r.entries[n])
	}
	return s
}

// Toggle sets the ClearDuringAnalysis value for the named entry and marks it
// as modified by the user. Nothing happens if the name is not present. UI
// events can race with changes to the list of sources so this is not an
// error.
func (r *Reconciler) Toggle(name string, value bool) {
	e, ok := r.entries[name]
	if !ok {
		return
	}
	e.ClearDuringAnalysis = value
	e.ModifiedByUser = true
}

// Persist returns the settings that should be stored: only entries modified
// by the user, in iteration order.
//
// An empty result does not mean that there is nothing to do. Any previously
// stored settings must be removed so that they don't linger.
func (r *Reconciler) Persist() []SourceSetting {
	s := make([]SourceSetting, 0, len(r.order))
	for _, n := range r.order {
		e := r.entries[n]
		if e.ModifiedByUser {
			s = append(s, SourceSetting{
				Name:                e.Name,
				ClearDuringAnalysis: e.ClearDuringAnalysis,
			})
		}
	}
	return s
}
