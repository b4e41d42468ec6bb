package series

import "sort"

// Lock acquires the guards of all given lists in the canonical order:
// ascending by assigned list identity. Aliased arguments (the same
// list passed more than once, as in a compaction whose destination is
// one of its sources) are locked once. Every call site that takes more
// than one list lock at a time must go through Lock/Unlock; the shared
// order is what makes concurrent multi-list operations deadlock-free.
func Lock(lists ...*List) {
	for _, l := range ordered(lists) {
		l.mu.Lock()
	}
}

// Unlock releases the guards acquired by Lock, in reverse order.
func Unlock(lists ...*List) {
	o := ordered(lists)
	for i := len(o) - 1; i >= 0; i-- {
		o[i].mu.Unlock()
	}
}

// ordered returns the distinct lists sorted by identity.
func ordered(lists []*List) []*List {
	o := make([]*List, len(lists))
	copy(o, lists)
	sort.Slice(o, func(i, j int) bool { return o[i].id < o[j].id })

	distinct := o[:0]
	for i, l := range o {
		if i == 0 || l != o[i-1] {
			distinct = append(distinct, l)
		}
	}
	return distinct
}
