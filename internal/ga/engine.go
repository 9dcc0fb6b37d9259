package ga

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"time"
)

// DefaultTournamentSize is the number of candidates drawn per tournament
const DefaultTournamentSize = 3

// Objective scores a decoded genome. Lower is better.
type Objective[T any] func(T) (float64, error)

// Options tunes an Engine. The zero value is usable.
type Options struct {
	// TournamentSize defaults to DefaultTournamentSize when zero
	TournamentSize int
	// Comparison decides how the best record ranks fitness
	Comparison Comparison
	// Rand is the only randomness source of the engine. Nil seeds from the clock.
	Rand *rand.Rand
	// Logger receives one line per generation and one per new best. Nil discards.
	Logger *log.Logger
	// Observer is called once per generation after scoring, before replacement
	Observer func(GenerationReport)
}

// GenerationReport summarizes one scored generation
type GenerationReport struct {
	Generation  int
	Scores      []float64 // read-only, owned by the engine
	MinFitness  float64
	BestFitness float64
	Improved    bool
}

// Stats is the final summary of a run
type Stats[T any] struct {
	BestGenome      Genome
	BestValue       T
	BestFitness     float64 // re-evaluated from BestGenome
	RecordedFitness float64 // captured when the record was set
	Generation      int
}

// Engine evolves a population of fixed-length bit genomes towards the
// minimum of an objective
type Engine[T any] struct {
	objective  Objective[T]
	decoder    Decoder[T]
	pop        *Population
	k          int
	comparison Comparison
	logger     *log.Logger
	observer   func(GenerationReport)

	best           Genome
	bestFitness    float64
	bestGeneration int
}

// NewEngine creates a random generation 0 and seeds the best record from
// its first individual
func NewEngine[T any](genomeLength, populationSize int, objective Objective[T], decoder Decoder[T], opts Options) (*Engine[T], error) {
	if genomeLength < 2 {
		return nil, fmt.Errorf("genome length %d: %w", genomeLength, ErrGenomeLength)
	}
	if populationSize < 2 || populationSize%2 != 0 {
		return nil, fmt.Errorf("population size %d: %w", populationSize, ErrPopulationSize)
	}
	if objective == nil {
		return nil, errors.New("nil objective")
	}
	if decoder == nil {
		return nil, errors.New("nil decoder")
	}
	if v, ok := decoder.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	k := opts.TournamentSize
	if k == 0 {
		k = DefaultTournamentSize
	}
	if k < 1 {
		return nil, fmt.Errorf("tournament size %d: %w", k, ErrTournamentSize)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	e := &Engine[T]{
		objective:  objective,
		decoder:    decoder,
		pop:        NewPopulation(populationSize, genomeLength, rng),
		k:          k,
		comparison: opts.Comparison,
		logger:     logger,
		observer:   opts.Observer,
	}

	first := e.pop.Genomes[0]
	fitness, err := e.evaluate(first)
	if err != nil {
		return nil, fmt.Errorf("generation 0, individual 0: %w", err)
	}
	e.best = first.Clone()
	e.bestFitness = fitness
	e.bestGeneration = 0

	return e, nil
}

// NewBitEngine creates an engine whose objective consumes raw genomes
func NewBitEngine(genomeLength, populationSize int, objective Objective[Genome], opts Options) (*Engine[Genome], error) {
	return NewEngine[Genome](genomeLength, populationSize, objective, Identity{}, opts)
}

// NewIntervalEngine creates an engine whose objective consumes genomes
// decoded onto [lo, hi]
func NewIntervalEngine(genomeLength, populationSize int, objective Objective[float64], lo, hi float64, opts Options) (*Engine[float64], error) {
	iv, err := NewInterval(lo, hi)
	if err != nil {
		return nil, err
	}
	return NewEngine[float64](genomeLength, populationSize, objective, iv, opts)
}

func (e *Engine[T]) evaluate(g Genome) (float64, error) {
	fitness, err := e.objective(e.decoder.Decode(g))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(fitness) {
		return 0, ErrInvalidFitness
	}
	return fitness, nil
}

// RunGeneration scores the current population, updates the best record and
// replaces the population with mutated offspring of tournament winners.
// On error neither the best record nor the population is modified.
func (e *Engine[T]) RunGeneration(crossoverRate, mutationRate float64, generation int) error {
	if err := validateRate("crossover rate", crossoverRate); err != nil {
		return err
	}
	if err := validateRate("mutation rate", mutationRate); err != nil {
		return err
	}

	// 1. Evaluate
	scores := make([]float64, e.pop.Size())
	for i, g := range e.pop.Genomes {
		fitness, err := e.evaluate(g)
		if err != nil {
			return fmt.Errorf("generation %d, individual %d: %w", generation, i, err)
		}
		scores[i] = fitness
	}

	minFitness := scores[0]
	for _, s := range scores[1:] {
		if s < minFitness {
			minFitness = s
		}
	}
	e.logger.Printf("gen %d: min fitness %g", generation, minFitness)

	// 2. Track best; ties keep the earlier record
	improved := false
	for i, s := range scores {
		if e.comparison.Better(s, e.bestFitness) {
			g := e.pop.Genomes[i]
			e.best = g.Clone()
			e.bestFitness = s
			e.bestGeneration = generation
			improved = true
			e.logger.Printf("gen %d [NEW BEST]: f(%v) -> %.2f", generation, e.decoder.Decode(g), s)
		}
	}

	if e.observer != nil {
		e.observer(GenerationReport{
			Generation:  generation,
			Scores:      scores,
			MinFitness:  minFitness,
			BestFitness: e.bestFitness,
			Improved:    improved,
		})
	}

	// 3. Select, recombine, mutate, replace
	e.pop.Replace(e.pop.Next(scores, e.k, crossoverRate, mutationRate))
	return nil
}

// Run drives generations 0..n-1 with fixed rates. The context is checked
// between generations only.
func (e *Engine[T]) Run(ctx context.Context, generations int, crossoverRate, mutationRate float64) error {
	for gen := 0; gen < generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.RunGeneration(crossoverRate, mutationRate, gen); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports the best-ever individual, re-evaluating its fitness
func (e *Engine[T]) Stats() (Stats[T], error) {
	fitness, err := e.evaluate(e.best)
	if err != nil {
		return Stats[T]{}, fmt.Errorf("re-evaluating best genome: %w", err)
	}
	return Stats[T]{
		BestGenome:      e.best.Clone(),
		BestValue:       e.decoder.Decode(e.best),
		BestFitness:     fitness,
		RecordedFitness: e.bestFitness,
		Generation:      e.bestGeneration,
	}, nil
}

// Population returns a deep copy of the current generation
func (e *Engine[T]) Population() []Genome {
	return e.pop.Snapshot()
}
