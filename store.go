package querystore

import (
	"fmt"
	"iter"
	"sync/atomic"
	"time"
)

// nextStoreID hands out store identity tags. Tag 0 is reserved for the
// untagged empty filter.
var nextStoreID atomic.Uint64

// Store owns an immutable, ordered collection of records.
//
// Records are identified by position: their zero-based index in the backing
// slice. Because the store never changes after construction, positions stay
// valid for its entire lifetime and the store may be read concurrently
// without synchronization.
type Store[T any] struct {
	id    uint64
	items []T
	opts  options
}

// New creates a store from the given records, taking ownership of the slice.
// The caller must not modify the slice afterwards.
func New[T any](items []T, optFns ...Option) *Store[T] {
	return &Store[T]{
		id:    nextStoreID.Add(1),
		items: items,
		opts:  applyOptions(optFns),
	}
}

// Len returns the number of records in the store.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Items returns a lazy, restartable sequence over all records in insertion
// order.
func (s *Store[T]) Items() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range s.items {
			if !yield(&s.items[i]) {
				return
			}
		}
	}
}

// All returns the full identity filter: every position in the store. It is
// the identity element of And and useful as the starting point of fold-style
// combinations.
func (s *Store[T]) All() Filter {
	positions := make([]uint32, len(s.items))
	for i := range positions {
		positions[i] = uint32(i)
	}
	return newFilter(s.id, positions)
}

// Filter materializes the records selected by the given filters as a lazy
// sequence in ascending position order.
//
// Zero filters select nothing. A single filter selects its records. Multiple
// filters are interpreted as their conjunction via IntersectAll. Each
// selected position is visited exactly once; the sequence is restartable.
//
// Filters derived from a different store are rejected with ErrStoreMismatch.
func (s *Store[T]) Filter(filters ...Filter) (iter.Seq[*T], error) {
	start := time.Now()

	var selection Filter
	switch len(filters) {
	case 0:
		selection = newFilter(s.id, nil)
	case 1:
		selection = filters[0]
	default:
		combined, err := IntersectAll(filters...)
		if err != nil {
			return nil, err
		}
		selection = combined
	}

	if selection.store != 0 && selection.store != s.id {
		return nil, fmt.Errorf("%w: filter from store %d applied to store %d", ErrStoreMismatch, selection.store, s.id)
	}

	duration := time.Since(start)
	s.opts.logger.LogFilter(len(filters), selection.Cardinality(), duration)
	s.opts.metrics.RecordFilter(len(filters), selection.Cardinality(), duration)

	return func(yield func(*T) bool) {
		for _, pos := range selection.positions {
			if !yield(&s.items[pos]) {
				return
			}
		}
	}, nil
}
