// Package testutil provides testing utilities for sfcgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic spatial point sets.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.IntPoints(1000, 3, 64) // 1000 points in [0, 64)^3
//
// # Exhaustive Grids
//
//	points := testutil.GridPoints(4, 2) // all 16 points of the 4x4 grid
package testutil
