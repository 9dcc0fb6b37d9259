package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"bitga/internal/ga"
)

// Config is the root configuration structure
type Config struct {
	Seed      int64           `yaml:"seed" toml:"seed"`
	GA        GAConfig        `yaml:"ga" toml:"ga"`
	Domain    DomainConfig    `yaml:"domain" toml:"domain"`
	Objective ObjectiveConfig `yaml:"objective" toml:"objective"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	Store     StoreConfig     `yaml:"store" toml:"store"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	GenomeLength  int    `yaml:"genome_length" toml:"genome_length"`
	Population    int    `yaml:"population" toml:"population"`
	TournamentK   int    `yaml:"tournament_k" toml:"tournament_k"`
	CrossoverRate Rate   `yaml:"crossover_rate" toml:"crossover_rate"`
	MutationRate  Rate   `yaml:"mutation_rate" toml:"mutation_rate"`
	Generations   int    `yaml:"generations" toml:"generations"`
	Comparison    string `yaml:"comparison" toml:"comparison"` // raw|absolute, empty picks per objective
}

// DomainConfig is the real interval genomes decode onto
type DomainConfig struct {
	Lo float64 `yaml:"lo" toml:"lo"`
	Hi float64 `yaml:"hi" toml:"hi"`
}

// ObjectiveConfig picks the function to minimize
type ObjectiveConfig struct {
	Name        string `yaml:"name" toml:"name"` // onemax|quadratic|polynomial
	Polynomials string `yaml:"polynomials" toml:"polynomials"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	EveryGenSummary bool   `yaml:"every_gen_summary" toml:"every_gen_summary"`
	Quiet           bool   `yaml:"quiet" toml:"quiet"` // silence the engine log lines
	CSVPath         string `yaml:"csv_path" toml:"csv_path"`
	JSONPath        string `yaml:"json_path" toml:"json_path"`
	ChampionDir     string `yaml:"champion_dir" toml:"champion_dir"`
}

// StoreConfig locates the run ledger. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// Load reads a YAML or TOML config file and returns a validated Config.
// The format is chosen by extension; anything but .toml is read as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.GA.GenomeLength == 0 {
		cfg.GA.GenomeLength = 8
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 100
	}
	if cfg.GA.TournamentK == 0 {
		cfg.GA.TournamentK = ga.DefaultTournamentSize
	}
	if cfg.GA.CrossoverRate == "" {
		cfg.GA.CrossoverRate = "0.85"
	}
	if cfg.GA.MutationRate == "" {
		cfg.GA.MutationRate = "1/genome_length"
	}
	if cfg.GA.Generations == 0 {
		cfg.GA.Generations = 100
	}
	if cfg.Domain.Lo == 0 && cfg.Domain.Hi == 0 {
		cfg.Domain.Lo = -100
		cfg.Domain.Hi = 100
	}
	if cfg.Objective.Name == "" {
		cfg.Objective.Name = "onemax"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ChampionDir == "" {
		cfg.Logging.ChampionDir = "artifacts"
	}
}

// Validate checks the values the engine would otherwise reject mid-run
func (c *Config) Validate() error {
	if c.GA.GenomeLength < 2 {
		return fmt.Errorf("ga.genome_length %d: %w", c.GA.GenomeLength, ga.ErrGenomeLength)
	}
	if c.GA.Population < 2 || c.GA.Population%2 != 0 {
		return fmt.Errorf("ga.population %d: %w", c.GA.Population, ga.ErrPopulationSize)
	}
	if c.GA.TournamentK < 1 {
		return fmt.Errorf("ga.tournament_k %d: %w", c.GA.TournamentK, ga.ErrTournamentSize)
	}
	if c.GA.Generations < 0 {
		return fmt.Errorf("ga.generations %d must not be negative", c.GA.Generations)
	}
	if _, err := c.Rates(); err != nil {
		return err
	}
	if _, err := c.Comparison(); err != nil {
		return err
	}
	if _, err := ga.NewInterval(c.Domain.Lo, c.Domain.Hi); err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	switch c.Objective.Name {
	case "onemax", "quadratic":
	case "polynomial":
		if c.Objective.Polynomials == "" {
			return fmt.Errorf("objective.polynomials is required for the polynomial objective")
		}
	default:
		return fmt.Errorf("unknown objective %q", c.Objective.Name)
	}
	return nil
}

// Rates holds the resolved per-generation rates
type Rates struct {
	Crossover float64
	Mutation  float64
}

// Rates resolves the crossover and mutation rate expressions
func (c *Config) Rates() (Rates, error) {
	cr, err := c.GA.CrossoverRate.Resolve(c.GA.GenomeLength)
	if err != nil {
		return Rates{}, fmt.Errorf("ga.crossover_rate: %w", err)
	}
	mr, err := c.GA.MutationRate.Resolve(c.GA.GenomeLength)
	if err != nil {
		return Rates{}, fmt.Errorf("ga.mutation_rate: %w", err)
	}
	return Rates{Crossover: cr, Mutation: mr}, nil
}

// Comparison parses the best-record comparison mode. When unset, the
// quadratic ranks by distance to zero and everything else by signed value.
func (c *Config) Comparison() (ga.Comparison, error) {
	if c.GA.Comparison == "" {
		if c.Objective.Name == "quadratic" {
			return ga.CompareAbsolute, nil
		}
		return ga.CompareRaw, nil
	}
	return ga.ParseComparison(c.GA.Comparison)
}

// EngineOptions builds engine options from the GA section
func (c *Config) EngineOptions() (ga.Options, error) {
	cmp, err := c.Comparison()
	if err != nil {
		return ga.Options{}, err
	}
	return ga.Options{TournamentSize: c.GA.TournamentK, Comparison: cmp}, nil
}
