package querystore

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap returns the filter's positions as a Roaring bitmap.
//
// The bitmap is an independent copy; mutating it does not affect the filter.
// Useful for handing query results to bitmap-based pipelines.
func (f Filter) Bitmap() *roaring.Bitmap {
	rb := roaring.New()
	rb.AddMany(f.positions)
	return rb
}

// UnionAll returns the disjunction of all filters.
//
// Unlike the pairwise merges, the N-ary union is delegated to Roaring's
// FastOr, which unions many sets in one pass over their containers. An empty
// input collection yields an empty filter.
func UnionAll(filters ...Filter) (Filter, error) {
	switch len(filters) {
	case 0:
		return Filter{}, nil
	case 1:
		return filters[0], nil
	}

	var store uint64
	bitmaps := make([]*roaring.Bitmap, 0, len(filters))
	for _, f := range filters {
		s, err := resolveStore(store, f.store)
		if err != nil {
			return Filter{}, err
		}
		store = s
		bitmaps = append(bitmaps, f.Bitmap())
	}

	rb := roaring.FastOr(bitmaps...)

	// ToArray yields ascending unique positions, so the invariant holds.
	return Filter{store: store, positions: rb.ToArray()}, nil
}
