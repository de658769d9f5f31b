package querystore

import (
	"slices"
)

// Filter is an ascending, duplicate-free set of record positions: the result
// of every index query and the operand of every combinator.
//
// A Filter is a value type and is never mutated after construction; it can be
// freely copied and shared across goroutines. The zero value is an empty,
// untagged filter that combines with filters from any store.
//
// The position sequence is deliberately private. Only index queries and
// combinators construct filters, which is what keeps the ascending/unique
// invariant intact.
type Filter struct {
	store     uint64
	positions []uint32
}

// newFilter wraps an already ascending, duplicate-free position slice.
func newFilter(store uint64, positions []uint32) Filter {
	return Filter{store: store, positions: positions}
}

// filterFromUnsorted re-establishes the ascending invariant. Key order and
// position order are unrelated, so anything assembled by walking keys must
// pass through here. The input must be duplicate-free and becomes owned by
// the filter.
func filterFromUnsorted(store uint64, positions []uint32) Filter {
	slices.Sort(positions)
	return Filter{store: store, positions: positions}
}

// Cardinality returns the number of positions in the filter.
func (f Filter) Cardinality() int {
	return len(f.positions)
}

// IsEmpty returns true if the filter matches no records.
func (f Filter) IsEmpty() bool {
	return len(f.positions) == 0
}

// Contains checks if the given position is in the filter. O(log n).
func (f Filter) Contains(pos uint32) bool {
	_, ok := slices.BinarySearch(f.positions, pos)
	return ok
}

// Positions returns a copy of the positions in ascending order.
func (f Filter) Positions() []uint32 {
	return slices.Clone(f.positions)
}

// And returns the intersection of both filters via a two-pointer merge over
// the ascending sequences. O(|f|+|other|).
func (f Filter) And(other Filter) (Filter, error) {
	store, err := resolveStore(f.store, other.store)
	if err != nil {
		return Filter{}, err
	}

	a, b := f.positions, other.positions
	out := make([]uint32, 0, min(len(a), len(b)))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case b[j] < a[i]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}

	return Filter{store: store, positions: out}, nil
}

// Or returns the union of both filters via a two-pointer merge, deduplicating
// at merge time. O(|f|+|other|).
func (f Filter) Or(other Filter) (Filter, error) {
	store, err := resolveStore(f.store, other.store)
	if err != nil {
		return Filter{}, err
	}

	a, b := f.positions, other.positions
	out := make([]uint32, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return Filter{store: store, positions: out}, nil
}

// IntersectAll returns the conjunction of all filters in a single multi-way
// merge bounded by the sum of the input sizes.
//
// The smallest filter drives the merge; every other filter keeps a cursor
// that only ever advances forward, so the aggregate cost is O(Σ|Fi|) rather
// than one scan per candidate. Sorting by cardinality is purely a work-saving
// heuristic: the result is independent of input order.
//
// An empty input collection yields an empty filter.
func IntersectAll(filters ...Filter) (Filter, error) {
	var store uint64
	for _, f := range filters {
		s, err := resolveStore(store, f.store)
		if err != nil {
			return Filter{}, err
		}
		store = s
	}

	switch len(filters) {
	case 0:
		return Filter{}, nil
	case 1:
		return filters[0], nil
	}

	sorted := slices.Clone(filters)
	slices.SortFunc(sorted, func(a, b Filter) int {
		return len(a.positions) - len(b.positions)
	})

	driver := sorted[0].positions
	if len(driver) == 0 {
		return Filter{store: store}, nil
	}

	rest := sorted[1:]
	cursors := make([]int, len(rest))
	out := make([]uint32, 0, len(driver))

outer:
	for _, candidate := range driver {
		for k := range rest {
			p := rest[k].positions
			c := cursors[k]
			for c < len(p) && p[c] < candidate {
				c++
			}
			cursors[k] = c
			if c == len(p) {
				// This filter is exhausted; no later candidate can match.
				break outer
			}
			if p[c] != candidate {
				continue outer
			}
		}
		out = append(out, candidate)
	}

	return Filter{store: store, positions: out}, nil
}
