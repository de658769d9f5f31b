package querystore

import (
	"cmp"
	"slices"
	"time"
)

// Index is an ordered secondary index over one projection of a store.
//
// It maps each distinct projected key to the ascending positions of the
// records sharing that key. An index is built once by a single pass over the
// store and is immutable afterwards; it may be queried concurrently without
// synchronization. Its validity is tied to the store it was built from.
type Index[K any] struct {
	store   uint64
	keys    []K
	groups  [][]uint32
	compare func(K, K) int
	opts    options
}

// NewIndex builds an ordered index over the projection for any naturally
// ordered key type. O(n log n).
func NewIndex[T any, K cmp.Ordered](s *Store[T], projection func(*T) K) *Index[K] {
	return NewIndexFunc(s, projection, cmp.Compare[K])
}

// NewIndexFunc builds an ordered index using an explicit comparator, for key
// types without a natural order. compare must describe a total order and
// return negative/zero/positive like cmp.Compare.
func NewIndexFunc[T any, K any](s *Store[T], projection func(*T) K, compare func(K, K) int) *Index[K] {
	start := time.Now()

	n := len(s.items)
	keyOf := make([]K, n)
	order := make([]uint32, n)
	for i := range s.items {
		keyOf[i] = projection(&s.items[i])
		order[i] = uint32(i)
	}

	// Stable sort keeps equal keys in position order, so every key-group
	// comes out ascending without a second pass.
	slices.SortStableFunc(order, func(a, b uint32) int {
		return compare(keyOf[a], keyOf[b])
	})

	idx := &Index[K]{store: s.id, compare: compare, opts: s.opts}
	for _, pos := range order {
		k := keyOf[pos]
		if len(idx.keys) == 0 || compare(idx.keys[len(idx.keys)-1], k) != 0 {
			idx.keys = append(idx.keys, k)
			idx.groups = append(idx.groups, nil)
		}
		last := len(idx.groups) - 1
		idx.groups[last] = append(idx.groups[last], pos)
	}

	duration := time.Since(start)
	s.opts.logger.LogIndexBuild(n, len(idx.keys), duration)
	s.opts.metrics.RecordIndexBuild(n, duration)

	return idx
}

// Len returns the number of distinct keys in the index.
func (ix *Index[K]) Len() int {
	return len(ix.keys)
}

// Equals returns the filter of all records whose key equals v. An absent key
// yields an empty filter, never an error.
func (ix *Index[K]) Equals(v K) Filter {
	start := time.Now()

	var f Filter
	if i, ok := slices.BinarySearchFunc(ix.keys, v, ix.compare); ok {
		f = newFilter(ix.store, ix.groups[i])
	} else {
		f = newFilter(ix.store, nil)
	}

	ix.record("equals", f, start)
	return f
}

// Range returns the filter of all records whose key falls between the two
// bounds. Key-groups are gathered in key order and then re-sorted into
// ascending position order, which restores the filter invariant.
func (ix *Index[K]) Range(lower, upper Bound[K]) Filter {
	start := time.Now()

	lo := 0
	switch lower.kind {
	case boundInclusive:
		lo = ix.lowerBound(lower.value)
	case boundExclusive:
		lo = ix.upperBound(lower.value)
	}

	hi := len(ix.keys)
	switch upper.kind {
	case boundInclusive:
		hi = ix.upperBound(upper.value)
	case boundExclusive:
		hi = ix.lowerBound(upper.value)
	}

	f := ix.collect(lo, hi)
	ix.record("range", f, start)
	return f
}

// GreaterThan returns the filter of all records with key > v.
func (ix *Index[K]) GreaterThan(v K) Filter {
	return ix.Range(Exclusive(v), Unbounded[K]())
}

// GreaterOrEqual returns the filter of all records with key >= v.
func (ix *Index[K]) GreaterOrEqual(v K) Filter {
	return ix.Range(Inclusive(v), Unbounded[K]())
}

// LessThan returns the filter of all records with key < v.
func (ix *Index[K]) LessThan(v K) Filter {
	return ix.Range(Unbounded[K](), Exclusive(v))
}

// LessOrEqual returns the filter of all records with key <= v.
func (ix *Index[K]) LessOrEqual(v K) Filter {
	return ix.Range(Unbounded[K](), Inclusive(v))
}

// Between returns the filter of all records with lower <= key <= upper.
func (ix *Index[K]) Between(lower, upper K) Filter {
	return ix.Range(Inclusive(lower), Inclusive(upper))
}

// First returns the filter of the records holding the smallest key.
func (ix *Index[K]) First() Filter {
	return ix.FirstN(1)
}

// FirstN returns the filter of at least n records with the smallest keys.
//
// Key-groups are taken whole, smallest key first, until n positions have been
// collected. A multi-record boundary group is never split, so the result may
// exceed n. n <= 0 yields an empty filter.
func (ix *Index[K]) FirstN(n int) Filter {
	start := time.Now()

	g, count := 0, 0
	for g < len(ix.groups) && count < n {
		count += len(ix.groups[g])
		g++
	}

	f := ix.collect(0, g)
	ix.record("first_n", f, start)
	return f
}

// Last returns the filter of the records holding the largest key.
func (ix *Index[K]) Last() Filter {
	return ix.LastN(1)
}

// LastN returns the filter of at least n records with the largest keys,
// under the same whole-group policy as FirstN.
func (ix *Index[K]) LastN(n int) Filter {
	start := time.Now()

	g, count := len(ix.groups), 0
	for g > 0 && count < n {
		g--
		count += len(ix.groups[g])
	}

	f := ix.collect(g, len(ix.groups))
	ix.record("last_n", f, start)
	return f
}

// collect concatenates the key-groups in [lo, hi) and re-sorts the result
// into ascending position order.
func (ix *Index[K]) collect(lo, hi int) Filter {
	if lo >= hi {
		return newFilter(ix.store, nil)
	}
	if hi-lo == 1 {
		// A single group is already ascending.
		return newFilter(ix.store, ix.groups[lo])
	}

	total := 0
	for g := lo; g < hi; g++ {
		total += len(ix.groups[g])
	}

	positions := make([]uint32, 0, total)
	for g := lo; g < hi; g++ {
		positions = append(positions, ix.groups[g]...)
	}

	return filterFromUnsorted(ix.store, positions)
}

// lowerBound returns the index of the first key >= v.
func (ix *Index[K]) lowerBound(v K) int {
	i, _ := slices.BinarySearchFunc(ix.keys, v, ix.compare)
	return i
}

// upperBound returns the index of the first key > v.
func (ix *Index[K]) upperBound(v K) int {
	i, found := slices.BinarySearchFunc(ix.keys, v, ix.compare)
	if found {
		return i + 1
	}
	return i
}

func (ix *Index[K]) record(op string, f Filter, start time.Time) {
	duration := time.Since(start)
	ix.opts.logger.LogQuery(op, f.Cardinality(), duration)
	ix.opts.metrics.RecordQuery(op, f.Cardinality(), duration)
}
