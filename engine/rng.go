package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Every dice roll in a session goes through one RNG, so a seed replays
// the session exactly.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides]. Dice with fewer than one
// side roll 0.
func (r *RNG) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	r.pos++
	return r.src.Intn(sides) + 1
}

// Intn returns a random index in [0, n).
func (r *RNG) Intn(n int) int {
	if n < 1 {
		return 0
	}
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
