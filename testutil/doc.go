// Package testutil provides testing utilities for querystore.
//
// This package is intended for use in tests and benchmarks only. It provides
// the fixed ten-person fixture used across the test suite and a seeded
// generator for larger random person datasets.
//
// # Fixture
//
//	persons := testutil.Persons()
//
// # Random Persons
//
//	rng := testutil.NewRNG(seed)
//	persons := rng.RandomPersons(1000)
package testutil
