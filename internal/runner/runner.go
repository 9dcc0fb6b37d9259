// Package runner wires a configuration to engines, metrics, champion
// artifacts and the run ledger. Both drivers share it.
package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"bitga/internal/config"
	"bitga/internal/ga"
	"bitga/internal/logging"
	"bitga/internal/store"
)

// Session holds the resources shared by every run of one process
type Session struct {
	Cfg   *config.Config
	Rates config.Rates

	metrics *logging.Logger // nil unless every_gen_summary
	ledger  *store.Store    // nil unless store.path
	engine  *log.Logger
	stderr  io.Writer
	rng     *rand.Rand
}

// Result is what a finished run reports
type Result struct {
	RunID      string
	Label      string
	Genome     ga.Genome
	Value      *float64
	Fitness    float64
	Generation int
}

// Open prepares a session. out receives engine log lines and console
// summaries.
func Open(cfg *config.Config, out io.Writer) (*Session, error) {
	rates, err := cfg.Rates()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		Cfg:    cfg,
		Rates:  rates,
		engine: log.New(out, "", 0),
		stderr: os.Stderr,
		rng:    rand.New(rand.NewSource(seed)),
	}
	if cfg.Logging.Quiet {
		s.engine = log.New(io.Discard, "", 0)
	}

	if cfg.Logging.EveryGenSummary {
		m, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
		if err != nil {
			return nil, err
		}
		m.SetConsole(out)
		if err := m.Init(); err != nil {
			m.Close()
			return nil, err
		}
		s.metrics = m
	}

	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.ledger = st
	}

	return s, nil
}

// Close flushes metrics and closes the ledger
func (s *Session) Close() {
	if s.metrics != nil {
		s.metrics.Close()
	}
	if s.ledger != nil {
		s.ledger.Close()
	}
}

// Spec describes one run
type Spec[T any] struct {
	Label      string // names artifacts, e.g. "onemax" or "poly1"
	Objective  string
	Expression string
	Build      func(genomeLength, populationSize int, opts ga.Options) (*ga.Engine[T], error)
	// Value extracts the real decoded value, nil for raw-bit runs
	Value func(T) *float64
}

// Evolve builds an engine, runs every configured generation and records
// the outcome
func Evolve[T any](ctx context.Context, s *Session, spec Spec[T]) (*Result, error) {
	runID := uuid.New().String()

	opts, err := s.Cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts.Rand = s.rng
	opts.Logger = s.engine
	if s.metrics != nil {
		opts.Observer = func(r ga.GenerationReport) {
			if err := s.metrics.LogGeneration(spec.Label, r); err != nil {
				fmt.Fprintf(s.stderr, "Warning: failed to log generation %d: %v\n", r.Generation, err)
			}
		}
	}

	engine, err := spec.Build(s.Cfg.GA.GenomeLength, s.Cfg.GA.Population, opts)
	if err != nil {
		return nil, err
	}
	if err := engine.Run(ctx, s.Cfg.GA.Generations, s.Rates.Crossover, s.Rates.Mutation); err != nil {
		return nil, err
	}

	stats, err := engine.Stats()
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      runID,
		Label:      spec.Label,
		Genome:     stats.BestGenome,
		Fitness:    stats.BestFitness,
		Generation: stats.Generation,
	}
	if spec.Value != nil {
		res.Value = spec.Value(stats.BestValue)
	}

	championPath := filepath.Join(s.Cfg.Logging.ChampionDir, fmt.Sprintf("champion_%s.json", spec.Label))
	err = logging.SaveChampion(championPath, logging.Champion{
		Run:        runID,
		Objective:  spec.Objective,
		Generation: res.Generation,
		Fitness:    res.Fitness,
		Value:      res.Value,
		Genome:     res.Genome.String(),
	})
	if err != nil {
		fmt.Fprintf(s.stderr, "Warning: failed to save champion: %v\n", err)
	}

	if s.ledger != nil {
		cmp, _ := s.Cfg.Comparison()
		err := s.ledger.Save(ctx, &store.RunRecord{
			ID:             runID,
			Objective:      spec.Objective,
			Expression:     spec.Expression,
			GenomeLength:   s.Cfg.GA.GenomeLength,
			Population:     s.Cfg.GA.Population,
			Generations:    s.Cfg.GA.Generations,
			CrossoverRate:  s.Rates.Crossover,
			MutationRate:   s.Rates.Mutation,
			Comparison:     cmp.String(),
			Seed:           s.Cfg.Seed,
			BestGenome:     res.Genome.String(),
			BestValue:      res.Value,
			BestFitness:    res.Fitness,
			BestGeneration: res.Generation,
		})
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

// Ledger exposes the run ledger, nil when disabled
func (s *Session) Ledger() *store.Store {
	return s.ledger
}

// RealValue is the Value extractor for interval runs
func RealValue(x float64) *float64 {
	return &x
}
