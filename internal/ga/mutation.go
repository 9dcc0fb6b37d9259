package ga

import (
	"math/rand"
)

// Mutate flips each bit in-place with probability rate
func Mutate(genome Genome, rate float64, rng *rand.Rand) {
	for i := range genome {
		if rng.Float64() < rate {
			genome[i] = 1 - genome[i]
		}
	}
}

// Breed pairs parents consecutively, recombines each pair and mutates both
// children independently. Children keep pair order then sibling order.
func Breed(parents []Genome, crossoverRate, mutationRate float64, rng *rand.Rand) []Genome {
	children := make([]Genome, 0, len(parents))
	for i := 0; i+1 < len(parents); i += 2 {
		c1, c2 := SinglePointCrossover(parents[i], parents[i+1], crossoverRate, rng)
		Mutate(c1, mutationRate, rng)
		Mutate(c2, mutationRate, rng)
		children = append(children, c1, c2)
	}
	return children
}
