// Package randutil centralises how simulation random sources are seeded.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so a single number reproduces
// a whole run.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSeed returns a fresh seed for a process that was not given one.
// Zero is reserved to mean "unset" in configuration, so it is never returned.
func NewSeed() int64 {
	seed := int64(mix(uint64(time.Now().UnixNano())) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Resolve returns seed unchanged when it is set and a fresh seed otherwise
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return NewSeed()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
