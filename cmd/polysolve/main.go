package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"bitga/internal/config"
	"bitga/internal/ga"
	"bitga/internal/objective"
	"bitga/internal/runner"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "hyper.yaml", "path to YAML or TOML config file")
	fileName := flag.String("f", "", "file with one polynomial per line (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil && !(errors.Is(err, fs.ErrNotExist) && *fileName != "") {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Objective.Name = "polynomial"
	if *fileName != "" {
		cfg.Objective.Polynomials = *fileName
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	polys, err := objective.ReadPolynomials(cfg.Objective.Polynomials)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "File %s does not exist\n", cfg.Objective.Polynomials)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading polynomials: %v\n", err)
		os.Exit(1)
	}

	session, err := runner.Open(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for i, p := range polys {
		res, err := runner.Evolve(ctx, session, runner.Spec[float64]{
			Label:      fmt.Sprintf("poly%d", i+1),
			Objective:  "polynomial",
			Expression: p.Source,
			Build: func(n, size int, opts ga.Options) (*ga.Engine[float64], error) {
				return ga.NewIntervalEngine(n, size, p.Objective(), cfg.Domain.Lo, cfg.Domain.Hi, opts)
			},
			Value: runner.RealValue,
		})
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted")
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Polynomial %q failed: %v\n", p.Source, err)
			failed++
			continue
		}

		fmt.Println("\n------- RESULT LOG -------")
		fmt.Printf("Finished last generation of polynomial -> %s\n", p.Source)
		fmt.Printf("Got best -> f(%.4f) = %.4f\n", *res.Value, res.Fitness)
		fmt.Printf("Genes -> %s, at generation %d\n", res.Genome, res.Generation)
		fmt.Println("--------------------------")
	}

	if failed > 0 {
		session.Close()
		os.Exit(1)
	}
}
