package querystore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/querystore"
	"github.com/hupe1980/querystore/testutil"
)

type fixture struct {
	store     *querystore.Store[testutil.Person]
	firstName *querystore.Index[string]
	lastName  *querystore.Index[string]
	age       *querystore.Index[int]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := querystore.New(testutil.Persons())
	return &fixture{
		store:     store,
		firstName: querystore.NewIndex(store, func(p *testutil.Person) string { return p.FirstName }),
		lastName:  querystore.NewIndex(store, func(p *testutil.Person) string { return p.LastName }),
		age:       querystore.NewIndex(store, func(p *testutil.Person) int { return p.Age }),
	}
}

// requireInvariant asserts the position-set invariant: strictly ascending,
// no duplicates, all positions within the store.
func requireInvariant(t *testing.T, f querystore.Filter, storeLen int) {
	t.Helper()

	positions := f.Positions()
	require.Len(t, positions, f.Cardinality())
	for i, pos := range positions {
		require.Less(t, int(pos), storeLen)
		if i > 0 {
			require.Greater(t, pos, positions[i-1])
		}
	}
}

func collect[T any](t *testing.T, store *querystore.Store[T], filters ...querystore.Filter) []T {
	t.Helper()

	seq, err := store.Filter(filters...)
	require.NoError(t, err)

	var out []T
	for item := range seq {
		out = append(out, *item)
	}
	return out
}

func TestFilter_And(t *testing.T) {
	fx := newFixture(t)

	matched, err := fx.firstName.Equals("Isaiah").And(fx.lastName.Equals("Mccarthy"))
	require.NoError(t, err)
	requireInvariant(t, matched, fx.store.Len())

	records := collect(t, fx.store, matched)
	require.Len(t, records, 1)
	assert.Equal(t, "Isaiah", records[0].FirstName)
	assert.Equal(t, "Mccarthy", records[0].LastName)
}

func TestFilter_AndDisjoint(t *testing.T) {
	fx := newFixture(t)

	matched, err := fx.firstName.Equals("Isaiah").And(fx.firstName.Equals("Bella"))
	require.NoError(t, err)
	assert.True(t, matched.IsEmpty())
}

func TestFilter_Or(t *testing.T) {
	fx := newFixture(t)

	matched, err := fx.age.LessThan(20).Or(fx.age.GreaterThan(70))
	require.NoError(t, err)
	requireInvariant(t, matched, fx.store.Len())

	records := collect(t, fx.store, matched)
	require.Len(t, records, 3)
}

func TestFilter_OrDeduplicates(t *testing.T) {
	fx := newFixture(t)

	meghan := fx.firstName.Equals("Meghan")
	doubled, err := meghan.Or(meghan)
	require.NoError(t, err)

	assert.Equal(t, meghan.Positions(), doubled.Positions())
}

func TestFilter_AlgebraicLaws(t *testing.T) {
	fx := newFixture(t)

	a := fx.age.LessThan(40)
	b := fx.lastName.GreaterOrEqual("H")
	c := fx.firstName.LessThan("M")
	all := fx.store.All()
	empty := fx.age.Equals(-1)

	and := func(x, y querystore.Filter) querystore.Filter {
		out, err := x.And(y)
		require.NoError(t, err)
		return out
	}
	or := func(x, y querystore.Filter) querystore.Filter {
		out, err := x.Or(y)
		require.NoError(t, err)
		return out
	}

	t.Run("commutative", func(t *testing.T) {
		assert.Equal(t, and(a, b).Positions(), and(b, a).Positions())
		assert.Equal(t, or(a, b).Positions(), or(b, a).Positions())
	})

	t.Run("associative", func(t *testing.T) {
		assert.Equal(t, and(and(a, b), c).Positions(), and(a, and(b, c)).Positions())
		assert.Equal(t, or(or(a, b), c).Positions(), or(a, or(b, c)).Positions())
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, a.Positions(), and(a, a).Positions())
		assert.Equal(t, a.Positions(), or(a, a).Positions())
	})

	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, a.Positions(), and(a, all).Positions())
		assert.Equal(t, a.Positions(), or(a, empty).Positions())
	})
}

func TestFilter_SubsetLaws(t *testing.T) {
	fx := newFixture(t)

	isSubset := func(sub, super querystore.Filter) bool {
		for _, pos := range sub.Positions() {
			if !super.Contains(pos) {
				return false
			}
		}
		return true
	}

	assert.True(t, isSubset(fx.age.GreaterThan(30), fx.age.GreaterOrEqual(30)))
	assert.True(t, isSubset(fx.age.LessThan(30), fx.age.LessOrEqual(30)))

	between := fx.age.Between(30, 50)
	both, err := fx.age.GreaterOrEqual(30).And(fx.age.LessOrEqual(50))
	require.NoError(t, err)
	assert.Equal(t, both.Positions(), between.Positions())
}

func TestIntersectAll(t *testing.T) {
	fx := newFixture(t)

	filters := []querystore.Filter{
		fx.age.GreaterThan(10),
		fx.age.LessThan(70),
		fx.lastName.GreaterOrEqual("B"),
	}

	combined, err := querystore.IntersectAll(filters...)
	require.NoError(t, err)
	requireInvariant(t, combined, fx.store.Len())

	// The multi-way merge must agree with folding pairwise And over every
	// ordering of the inputs.
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range perms {
		folded := filters[perm[0]]
		for _, i := range perm[1:] {
			next, err := folded.And(filters[i])
			require.NoError(t, err)
			folded = next
		}
		assert.Equal(t, folded.Positions(), combined.Positions())
	}
}

func TestIntersectAll_Degenerate(t *testing.T) {
	fx := newFixture(t)

	t.Run("empty collection", func(t *testing.T) {
		combined, err := querystore.IntersectAll()
		require.NoError(t, err)
		assert.True(t, combined.IsEmpty())
	})

	t.Run("single filter", func(t *testing.T) {
		f := fx.age.LessThan(30)
		combined, err := querystore.IntersectAll(f)
		require.NoError(t, err)
		assert.Equal(t, f.Positions(), combined.Positions())
	})

	t.Run("contains empty filter", func(t *testing.T) {
		combined, err := querystore.IntersectAll(fx.age.LessThan(30), fx.age.Equals(-1))
		require.NoError(t, err)
		assert.True(t, combined.IsEmpty())
	})
}

func TestUnionAll(t *testing.T) {
	fx := newFixture(t)

	filters := []querystore.Filter{
		fx.firstName.Equals("Test"), // no match
		fx.age.LessThan(20),
		fx.firstName.Equals("Meghan"),
		fx.age.GreaterThan(70),
		fx.firstName.Equals("Meghan"), // duplicate input
	}

	combined, err := querystore.UnionAll(filters...)
	require.NoError(t, err)
	requireInvariant(t, combined, fx.store.Len())
	assert.Equal(t, 4, combined.Cardinality())

	// Must agree with folding pairwise Or.
	folded := filters[0]
	for _, f := range filters[1:] {
		next, err := folded.Or(f)
		require.NoError(t, err)
		folded = next
	}
	assert.Equal(t, folded.Positions(), combined.Positions())
}

func TestUnionAll_Degenerate(t *testing.T) {
	combined, err := querystore.UnionAll()
	require.NoError(t, err)
	assert.True(t, combined.IsEmpty())
}

func TestFilter_StoreMismatch(t *testing.T) {
	fx := newFixture(t)

	other := querystore.New(testutil.Persons())
	otherAge := querystore.NewIndex(other, func(p *testutil.Person) int { return p.Age })

	ours := fx.age.LessThan(30)
	theirs := otherAge.LessThan(30)

	_, err := ours.And(theirs)
	require.ErrorIs(t, err, querystore.ErrStoreMismatch)

	_, err = ours.Or(theirs)
	require.ErrorIs(t, err, querystore.ErrStoreMismatch)

	_, err = querystore.IntersectAll(ours, theirs)
	require.ErrorIs(t, err, querystore.ErrStoreMismatch)

	_, err = querystore.UnionAll(ours, theirs)
	require.ErrorIs(t, err, querystore.ErrStoreMismatch)
}

func TestFilter_ZeroValue(t *testing.T) {
	fx := newFixture(t)

	var zero querystore.Filter
	assert.True(t, zero.IsEmpty())

	matched, err := zero.And(fx.age.LessThan(30))
	require.NoError(t, err)
	assert.True(t, matched.IsEmpty())

	union, err := zero.Or(fx.firstName.Equals("Isaiah"))
	require.NoError(t, err)
	assert.Equal(t, 1, union.Cardinality())
}

func TestFilter_PositionsIsACopy(t *testing.T) {
	fx := newFixture(t)

	f := fx.age.LessThan(30)
	positions := f.Positions()
	require.NotEmpty(t, positions)

	positions[0] = 999
	assert.NotEqual(t, positions[0], f.Positions()[0])
}

func TestFilter_Bitmap(t *testing.T) {
	fx := newFixture(t)

	f := fx.age.LessThan(30)
	rb := f.Bitmap()
	assert.Equal(t, uint64(f.Cardinality()), rb.GetCardinality())

	// The bitmap is a copy; mutating it must not leak into the filter.
	rb.Add(999)
	assert.False(t, f.Contains(999))
}

func TestFilter_Contains(t *testing.T) {
	fx := newFixture(t)

	isaiah := fx.firstName.Equals("Isaiah")
	assert.True(t, isaiah.Contains(0))
	assert.False(t, isaiah.Contains(1))
}
