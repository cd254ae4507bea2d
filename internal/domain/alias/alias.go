// Package alias holds the canonical-name to alias tables used to accept
// nicknames and abbreviations for teams and players.
//
// Tables are built once and never mutated afterwards, so a *Table can be
// shared by any number of goroutines.
package alias

import (
	"sort"

	"github.com/okian/goalguessr/internal/domain/textnorm"
)

// Table maps normalized canonical names to their normalized aliases and
// keeps the reverse index needed for alias -> canonical lookups.
type Table struct {
	aliases map[string]map[string]struct{}
	owners  map[string][]string
}

// NewTable builds a table from canonical -> aliases entries. Keys and aliases
// are normalized; empty strings and aliases equal to their own canonical are
// dropped.
func NewTable(entries map[string][]string) *Table {
	t := &Table{
		aliases: make(map[string]map[string]struct{}, len(entries)),
		owners:  make(map[string][]string),
	}
	t.add(entries)
	return t
}

// Merge returns a new table holding the union of t and entries. t is left
// untouched.
func (t *Table) Merge(entries map[string][]string) *Table {
	out := NewTable(nil)
	for canonical, set := range t.aliases {
		list := make([]string, 0, len(set))
		for a := range set {
			list = append(list, a)
		}
		out.add(map[string][]string{canonical: list})
	}
	out.add(entries)
	return out
}

func (t *Table) add(entries map[string][]string) {
	for rawCanonical, rawAliases := range entries {
		canonical := textnorm.Normalize(rawCanonical)
		if canonical == "" {
			continue
		}
		set, ok := t.aliases[canonical]
		if !ok {
			set = make(map[string]struct{}, len(rawAliases))
			t.aliases[canonical] = set
		}
		for _, raw := range rawAliases {
			a := textnorm.Normalize(raw)
			if a == "" || a == canonical {
				continue
			}
			if _, dup := set[a]; dup {
				continue
			}
			set[a] = struct{}{}
			t.owners[a] = insertSorted(t.owners[a], canonical)
		}
	}
}

func insertSorted(list []string, s string) []string {
	i := sort.SearchStrings(list, s)
	if i < len(list) && list[i] == s {
		return list
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}

// Len returns the number of canonical entries.
func (t *Table) Len() int {
	return len(t.aliases)
}

// Aliases returns the sorted aliases registered for canonical.
func (t *Table) Aliases(canonical string) []string {
	set := t.aliases[canonical]
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// IsAlias reports whether name is registered as an alias of canonical.
func (t *Table) IsAlias(canonical, name string) bool {
	_, ok := t.aliases[canonical][name]
	return ok
}

// Canonical resolves name to its canonical entry. An exact canonical match
// always wins; otherwise name must be the alias of exactly one canonical.
func (t *Table) Canonical(name string) (string, bool) {
	if _, ok := t.aliases[name]; ok {
		return name, true
	}
	owners := t.owners[name]
	if len(owners) != 1 {
		return "", false
	}
	return owners[0], true
}

// Resolve reports whether query names the same entity as correct. Both
// arguments must already be normalized. It accepts:
//   - an exact match,
//   - query registered as an alias of correct,
//   - query being a canonical name that lists correct as its alias.
//
// Two aliases of the same canonical do not resolve against each other.
// Partial or fuzzy matching is left to the caller.
func (t *Table) Resolve(query, correct string) bool {
	if query == "" || correct == "" {
		return false
	}
	if query == correct {
		return true
	}
	return t.IsAlias(correct, query) || t.IsAlias(query, correct)
}
