package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"bitga/internal/ga"
)

// Logger handles per-generation output and artifact saving
type Logger struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	console     io.Writer
	initialized bool
}

// NewLogger creates a new logger
func NewLogger(csvPath, jsonPath string) (*Logger, error) {
	l := &Logger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  os.Stdout,
	}

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// SetConsole redirects console lines; nil silences them
func (l *Logger) SetConsole(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.console = w
}

// Init initializes the log files
func (l *Logger) Init() error {
	var err error

	// Open CSV file
	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	// Write CSV header
	header := []string{
		"run", "generation", "min_fitness", "mean_fitness", "std_fitness", "best_fitness", "improved",
	}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	// Open JSON file
	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close closes all log files
func (l *Logger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	Run         string  `json:"run"`
	Generation  int     `json:"generation"`
	MinFitness  float64 `json:"min_fitness"`
	MeanFitness float64 `json:"mean_fitness"`
	StdFitness  float64 `json:"std_fitness"`
	BestFitness float64 `json:"best_fitness"`
	Improved    bool    `json:"improved"`
}

// Summarize computes the statistics of one generation report
func Summarize(run string, r ga.GenerationReport) GenerationSummary {
	mean, std := stat.MeanStdDev(r.Scores, nil)
	return GenerationSummary{
		Run:         run,
		Generation:  r.Generation,
		MinFitness:  r.MinFitness,
		MeanFitness: mean,
		StdFitness:  std,
		BestFitness: r.BestFitness,
		Improved:    r.Improved,
	}
}

// LogGeneration logs a generation summary. run labels the row so several
// runs can share one file.
func (l *Logger) LogGeneration(run string, r ga.GenerationReport) error {
	if !l.initialized {
		return nil
	}

	summary := Summarize(run, r)

	// Write CSV row
	row := []string{
		run,
		strconv.Itoa(summary.Generation),
		strconv.FormatFloat(summary.MinFitness, 'g', -1, 64),
		fmt.Sprintf("%.4f", summary.MeanFitness),
		fmt.Sprintf("%.4f", summary.StdFitness),
		strconv.FormatFloat(summary.BestFitness, 'g', -1, 64),
		strconv.FormatBool(summary.Improved),
	}
	if err := l.csvWriter.Write(row); err != nil {
		return err
	}
	l.csvWriter.Flush()
	if err := l.csvWriter.Error(); err != nil {
		return err
	}

	// Write JSON line
	jsonLine, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	if _, err := l.jsonFile.Write(append(jsonLine, '\n')); err != nil {
		return err
	}

	// Print to console
	fmt.Fprintf(l.console, "Gen %4d | Min: %10.4f | Mean: %10.4f | Std: %8.4f | Best: %10.4f\n",
		summary.Generation, summary.MinFitness, summary.MeanFitness, summary.StdFitness, summary.BestFitness)
	return nil
}

// Champion is the saved form of a run's best individual
type Champion struct {
	Run        string   `json:"run"`
	Objective  string   `json:"objective"`
	Generation int      `json:"generation"`
	Fitness    float64  `json:"fitness"`
	Value      *float64 `json:"value,omitempty"` // decoded value, interval runs only
	Genome     string   `json:"genome"`
}

// SaveChampion saves the champion genome to a file
func SaveChampion(path string, c Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonData, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (*Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Champion
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if _, err := ga.ParseGenome(c.Genome); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &c, nil
}
