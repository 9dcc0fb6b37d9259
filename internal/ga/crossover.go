package ga

import (
	"math/rand"
)

// CrossoverAt swaps the tails of two parents at cut point pt.
// Children are always fresh copies.
func CrossoverAt(p1, p2 Genome, pt int) (Genome, Genome) {
	size := len(p1)
	c1 := make(Genome, size)
	c2 := make(Genome, size)

	copy(c1[:pt], p1[:pt])
	copy(c1[pt:], p2[pt:])
	copy(c2[:pt], p2[:pt])
	copy(c2[pt:], p1[pt:])

	return c1, c2
}

// CutPoint picks a cut uniformly from [1, length-2], never at either end.
// A two-bit genome has a single interior cut at 1.
func CutPoint(length int, rng *rand.Rand) int {
	hi := length - 2
	if hi < 1 {
		hi = 1
	}
	return 1 + rng.Intn(hi)
}

// SinglePointCrossover recombines two parents with probability rate,
// otherwise the children are copies of the parents
func SinglePointCrossover(p1, p2 Genome, rate float64, rng *rand.Rand) (Genome, Genome) {
	if rng.Float64() < rate {
		return CrossoverAt(p1, p2, CutPoint(len(p1), rng))
	}
	return p1.Clone(), p2.Clone()
}
