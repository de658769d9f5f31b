package querystore

// boundKind discriminates the three ways a range endpoint can behave.
type boundKind uint8

const (
	boundUnbounded boundKind = iota
	boundInclusive
	boundExclusive
)

// Bound is one endpoint of a range query: unbounded, inclusive or exclusive.
type Bound[K any] struct {
	value K
	kind  boundKind
}

// Inclusive returns a bound that includes v.
func Inclusive[K any](v K) Bound[K] {
	return Bound[K]{value: v, kind: boundInclusive}
}

// Exclusive returns a bound that excludes v.
func Exclusive[K any](v K) Bound[K] {
	return Bound[K]{value: v, kind: boundExclusive}
}

// Unbounded returns a bound that matches everything on its side.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{}
}
