package querystore

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreMismatch is returned when filters or indices derived from
	// different stores are combined. Positions are only meaningful relative
	// to the store that assigned them, so such a combination can never
	// produce a correct result.
	ErrStoreMismatch = errors.New("filters derive from different stores")
)

// resolveStore merges two store identity tags. The zero tag is the untagged
// (always empty) filter and is compatible with anything.
func resolveStore(a, b uint64) (uint64, error) {
	switch {
	case a == 0:
		return b, nil
	case b == 0 || a == b:
		return a, nil
	default:
		return 0, fmt.Errorf("%w: store %d vs store %d", ErrStoreMismatch, a, b)
	}
}
