package sim

import (
	"math/rand/v2"
	"time"
)

// Random is the simulation's source of randomness.
type Random interface {
	// Range returns a float in [lo, hi).
	Range(lo, hi float64) float64
	// Bool returns true with probability p.
	Bool(p float64) bool
	// IntN returns an int in [0, n).
	IntN(n int) int
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a PCG-backed Random. A zero seed picks one from the wall clock.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Range(lo, hi float64) float64 {
	return lo + p.r.Float64()*(hi-lo)
}

func (p *pcgRandom) Bool(prob float64) bool {
	return p.r.Float64() < prob
}

func (p *pcgRandom) IntN(n int) int {
	return p.r.IntN(n)
}
