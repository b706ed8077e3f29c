// Package randutil derives reproducible random sources and random game
// setups from a single int64 seed.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every caller derives the two PCG seeds the same way, so a seed printed in a
// report is enough to replay a game.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Heaps draws a heap vector with between minHeaps and maxHeaps heaps, each
// holding at most maxCoins coins. At least one heap is non-empty so the
// result is always a playable starting position. Bounds below one are
// raised to one and maxHeaps below minHeaps is raised to minHeaps.
func Heaps(rng *rand.Rand, minHeaps, maxHeaps, maxCoins int) []int {
	minHeaps = max(minHeaps, 1)
	maxHeaps = max(maxHeaps, minHeaps)
	maxCoins = max(maxCoins, 1)

	n := minHeaps + rng.IntN(maxHeaps-minHeaps+1)
	heaps := make([]int, n)
	total := 0
	for i := range heaps {
		heaps[i] = rng.IntN(maxCoins + 1)
		total += heaps[i]
	}
	if total == 0 {
		heaps[rng.IntN(n)] = 1 + rng.IntN(maxCoins)
	}
	return heaps
}

// mix is the splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
