package ga

import (
	"math/rand"
)

// TournamentSelectIndex draws k indices uniformly with replacement and
// returns the one with the strictly smallest score. Ties keep the earlier draw.
func TournamentSelectIndex(scores []float64, k int, rng *rand.Rand) int {
	if len(scores) == 0 {
		return -1
	}
	if k < 1 {
		k = 1
	}

	best := rng.Intn(len(scores))
	for i := 1; i < k; i++ {
		candidate := rng.Intn(len(scores))
		if scores[candidate] < scores[best] {
			best = candidate
		}
	}
	return best
}

// TournamentSelect selects a genome using tournament selection.
// The returned genome is shared with the population, not copied.
func TournamentSelect(pop []Genome, scores []float64, k int, rng *rand.Rand) Genome {
	idx := TournamentSelectIndex(scores[:len(pop)], k, rng)
	if idx < 0 {
		return nil
	}
	return pop[idx]
}

// SelectParents runs one tournament per slot of the next generation
func SelectParents(pop []Genome, scores []float64, k int, rng *rand.Rand) []Genome {
	parents := make([]Genome, len(pop))
	for i := range parents {
		parents[i] = TournamentSelect(pop, scores, k, rng)
	}
	return parents
}
