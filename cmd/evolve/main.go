package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"bitga/internal/config"
	"bitga/internal/ga"
	"bitga/internal/objective"
	"bitga/internal/runner"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to YAML or TOML config file (defaults when empty)")
	objectiveName := flag.String("objective", "", "onemax|quadratic (overrides config)")
	generations := flag.Int("generations", 0, "number of generations to run (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *objectiveName != "" {
		cfg.Objective.Name = *objectiveName
	}
	if *generations > 0 {
		cfg.GA.Generations = *generations
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	cmp, _ := cfg.Comparison()
	fmt.Printf("Bit GA - Objective: %s\n", cfg.Objective.Name)
	fmt.Printf("Genome length: %d, Population: %d, Tournament K: %d, Comparison: %s\n",
		cfg.GA.GenomeLength, cfg.GA.Population, cfg.GA.TournamentK, cmp)
	fmt.Println("---")

	session, err := runner.Open(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startTime := time.Now()

	var res *runner.Result
	switch cfg.Objective.Name {
	case "onemax":
		res, err = runner.Evolve(ctx, session, runner.Spec[ga.Genome]{
			Label:     "onemax",
			Objective: "onemax",
			Build: func(n, p int, opts ga.Options) (*ga.Engine[ga.Genome], error) {
				return ga.NewBitEngine(n, p, objective.OneMax, opts)
			},
		})
	case "quadratic":
		res, err = runner.Evolve(ctx, session, runner.Spec[float64]{
			Label:      "quadratic",
			Objective:  "quadratic",
			Expression: objective.QuadraticExpr,
			Build: func(n, p int, opts ga.Options) (*ga.Engine[float64], error) {
				return ga.NewIntervalEngine(n, p, objective.Quadratic, cfg.Domain.Lo, cfg.Domain.Hi, opts)
			},
			Value: runner.RealValue,
		})
	default:
		fmt.Fprintf(os.Stderr, "Objective %q is not built in; use polysolve for polynomial files\n", cfg.Objective.Name)
		session.Close()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		session.Close()
		os.Exit(1)
	}

	elapsed := time.Since(startTime)
	fmt.Println("---")
	fmt.Printf("Finished %d generations in %v\n", cfg.GA.Generations, elapsed)
	if res.Value != nil {
		fmt.Printf("Best: f(%.4f) = %.4f, genes %s, at generation %d\n", *res.Value, res.Fitness, res.Genome, res.Generation)
	} else {
		fmt.Printf("Best: %s -> %.2f, at generation %d\n", res.Genome, res.Fitness, res.Generation)
	}
	fmt.Printf("Run ID: %s\n", res.RunID)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
