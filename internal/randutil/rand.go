// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand whose sequence is fully determined by seed.
// PCG wants two 64-bit words, so the single seed is expanded through a
// split-mix finaliser; nearby seeds still diverge immediately, which
// matters because simulation batches use consecutive seeds.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
