// Package sortutil implements the comparator contract spec.md §6 treats as
// an external collaborator: ordering top-N results by value descending (or
// lexicographically for string data), with ties broken by ascending key.
//
// A comparator contract is, by definition, a couple of comparison functions
// and a call to sort — there is no third-party sorting library in the
// retrieval pack that adds anything over stdlib's sort.Slice here, so this
// stays on the standard library by design, not by omission.
package sortutil

import "sort"

// Entry is one row of a top-N result: a cache id paired with either its
// numeric value (hits) or its data string (e.g. the visitors module, which
// ranks by the underlying string rather than a count).
type Entry struct {
	Key   uint32
	Value uint64
	Data  string
}

// CmpU32Asc orders a, b ascending.
func CmpU32Asc(a, b uint32) bool { return a < b }

// CmpU32Desc orders a, b descending.
func CmpU32Desc(a, b uint32) bool { return a > b }

// SortRawNumData sorts entries by Value descending, ties broken by Key
// ascending (spec.md §4.4, §8 property 8).
func SortRawNumData(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
}

// SortRawStrData sorts entries lexicographically by Data ascending, ties
// broken by Key ascending. Used for the visitors module's top-N (spec.md
// §4.4).
func SortRawStrData(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Data != entries[j].Data {
			return entries[i].Data < entries[j].Data
		}
		return entries[i].Key < entries[j].Key
	})
}
