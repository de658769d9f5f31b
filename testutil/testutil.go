package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// Person is the record type used throughout the tests and benchmarks.
type Person struct {
	FirstName string
	LastName  string
	Age       int
}

// Persons returns the fixed ten-person fixture. Positions are significant:
// several tests assert result order against them.
func Persons() []Person {
	return []Person{
		{FirstName: "Isaiah", LastName: "Mccarthy", Age: 32},
		{FirstName: "Bella", LastName: "Crawford", Age: 58},
		{FirstName: "Dexter", LastName: "O'Brien", Age: 75},
		{FirstName: "Catherine", LastName: "Hunt", Age: 16},
		{FirstName: "Haris", LastName: "Burke", Age: 28},
		{FirstName: "Meghan", LastName: "Berry", Age: 42},
		{FirstName: "Brett", LastName: "Holmes", Age: 37},
		{FirstName: "Daniella", LastName: "Edwards", Age: 28},
		{FirstName: "Aaron", LastName: "Mcbride", Age: 8},
		{FirstName: "Sharon", LastName: "Snyder", Age: 63},
	}
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var firstNames = []string{
	"Aaron", "Bella", "Brett", "Catherine", "Daniella", "Dexter", "Haris",
	"Isaiah", "Jerry", "Meghan", "Sharon", "Tessa", "Victor", "Wanda",
}

var lastNames = []string{
	"Berry", "Burke", "Crawford", "Edwards", "Holmes", "Hunt", "Mcbride",
	"Mccarthy", "O'Brien", "Snyder", "Tondeur", "Underwood", "Vance",
}

// RandomPersons generates n persons with names drawn from small pools, so
// that equality queries over larger datasets still produce multi-record
// key-groups. Deterministic for a given seed.
func (r *RNG) RandomPersons(n int) []Person {
	persons := make([]Person, n)
	for i := range persons {
		persons[i] = Person{
			FirstName: firstNames[r.Intn(len(firstNames))],
			LastName:  lastNames[r.Intn(len(lastNames))],
			Age:       r.Intn(100),
		}
	}
	return persons
}

// UniquePersons generates n persons with unique last names, useful when a
// test needs singleton key-groups.
func (r *RNG) UniquePersons(n int) []Person {
	persons := make([]Person, n)
	for i := range persons {
		persons[i] = Person{
			FirstName: firstNames[r.Intn(len(firstNames))],
			LastName:  fmt.Sprintf("Name-%06d", i),
			Age:       r.Intn(100),
		}
	}
	return persons
}
