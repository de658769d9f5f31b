// Package querystore provides an embeddable in-memory secondary-index engine.
//
// Querystore builds ordered indices over user-chosen projections of an
// immutable record collection and answers ad-hoc boolean queries (equality,
// range, conjunction, disjunction, top/bottom-k) by combining index lookups
// into position sets, then materializing the matching records.
//
// # Quick Start
//
//	store := querystore.New(persons)
//
//	firstName := querystore.NewIndex(store, func(p *Person) string { return p.FirstName })
//	age := querystore.NewIndex(store, func(p *Person) int { return p.Age })
//
//	young, _ := age.LessThan(30).Or(age.GreaterOrEqual(60))
//	matched, _ := firstName.Equals("Isaiah").And(young)
//
//	records, _ := store.Filter(matched)
//	for p := range records {
//	    fmt.Println(p.FirstName, p.Age)
//	}
//
// # Model
//
// Records are identified by their position: a zero-based, stable index into
// the store's backing slice, assigned at construction and never reassigned.
// The store is immutable after construction, so indices and filters derived
// from it stay valid for the store's entire lifetime.
//
// Every query returns a Filter, an ascending duplicate-free position set.
// Filters combine with And/Or and the N-ary IntersectAll/UnionAll; all
// combinators are pure and bounded by the sum of their input sizes.
//
// # Concurrency
//
// Stores, indices and filters are immutable once built and may be read from
// any number of goroutines without synchronization. Build an index fully
// before querying it.
//
// # Safety
//
// Each store carries an opaque identity tag that is propagated into every
// index and filter derived from it. Combining filters from different stores
// returns ErrStoreMismatch instead of producing nonsensical positions.
package querystore
