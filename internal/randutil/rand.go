package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so every call site that shares
// a seed sees the same sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Split derives n independent generators from parent. The parent is advanced
// n times, so a seeded parent always yields the same children.
func Split(parent *rand.Rand, n int) []*rand.Rand {
	children := make([]*rand.Rand, n)
	for i := range children {
		s := parent.Uint64()
		children[i] = rand.New(rand.NewPCG(mix(s), mix(s^goldenRatio64)))
	}
	return children
}

// splitmix64 finalizer
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
