package testutil

import (
	"math/rand"
	"strconv"
	"sync"
)

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
		rand: rand.New(rand.NewSource(seed)),
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

// IntPoints generates num random integer points with coordinates in
// [0, maxCoord). Duplicate points are possible.
func (r *RNG) IntPoints(num, dimensions, maxCoord int) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]int, num)
	for i := 0; i < num; i++ {
		p := make([]int, dimensions)
		for d := range p {
			p[d] = r.rand.Intn(maxCoord)
		}
		points[i] = p
	}

	return points
}

// ClusteredIntPoints generates points grouped around random cluster
// centers, with per-coordinate jitter in [-spread, spread]. Coordinates are
// clamped to [0, maxCoord). Useful for exercising cell grouping on
// non-uniform data.
func (r *RNG) ClusteredIntPoints(num, dimensions, maxCoord, clusters, spread int) [][]int {
	centers := r.IntPoints(clusters, dimensions, maxCoord)

	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]int, num)
	for i := 0; i < num; i++ {
		center := centers[i%clusters]
		p := make([]int, dimensions)
		for d := range p {
			v := center[d] + r.rand.Intn(2*spread+1) - spread
			if v < 0 {
				v = 0
			}
			if v >= maxCoord {
				v = maxCoord - 1
			}
			p[d] = v
		}
		points[i] = p
	}

	return points
}

// GridPoints returns every point of the regular side^dimensions integer
// grid, in row-major order. Deterministic; no RNG involved.
func GridPoints(side, dimensions int) [][]int {
	total := 1
	for i := 0; i < dimensions; i++ {
		total *= side
	}

	points := make([][]int, total)
	for i := 0; i < total; i++ {
		p := make([]int, dimensions)
		rest := i
		for d := dimensions - 1; d >= 0; d-- {
			p[d] = rest % side
			rest /= side
		}
		points[i] = p
	}

	return points
}

// Labels returns n string payloads "p0" ... "p<n-1>", one per point.
func Labels(n int) []string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = "p" + strconv.Itoa(i)
	}
	return labels
}
