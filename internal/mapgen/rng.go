package mapgen

import (
	"math/rand"
	"time"
)

// RNG is the random source the generator draws from. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// NewRNG returns a seeded source and the seed actually used.
// Seed 0 picks one from the clock.
func NewRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// randRange returns a value in [lo, hi].
func randRange(rng RNG, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
