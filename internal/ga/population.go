package ga

import (
	"math/rand"
)

// Population manages the genomes of the current generation
type Population struct {
	Genomes      []Genome
	GenomeLength int
	rng          *rand.Rand
}

// NewPopulation creates a new random population
func NewPopulation(size, genomeLength int, rng *rand.Rand) *Population {
	p := &Population{
		Genomes:      make([]Genome, size),
		GenomeLength: genomeLength,
		rng:          rng,
	}

	for i := 0; i < size; i++ {
		p.Genomes[i] = RandomGenome(genomeLength, rng)
	}

	return p
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Genomes)
}

// Snapshot returns a deep copy of every genome
func (p *Population) Snapshot() []Genome {
	out := make([]Genome, len(p.Genomes))
	for i, g := range p.Genomes {
		out[i] = g.Clone()
	}
	return out
}

// Replace swaps in the next generation wholesale. Nothing is carried over.
func (p *Population) Replace(children []Genome) {
	p.Genomes = children
}

// Next builds the following generation from the current one and its scores
func (p *Population) Next(scores []float64, k int, crossoverRate, mutationRate float64) []Genome {
	parents := SelectParents(p.Genomes, scores, k, p.rng)
	return Breed(parents, crossoverRate, mutationRate, p.rng)
}
