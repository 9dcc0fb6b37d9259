package ga

import (
	"errors"
	"fmt"
)

var (
	ErrPopulationSize = errors.New("population size must be even and at least 2")
	ErrGenomeLength   = errors.New("genome length must be at least 2")
	ErrRate           = errors.New("rate must be within [0, 1]")
	ErrTournamentSize = errors.New("tournament size must be at least 1")
	ErrInterval       = errors.New("interval bounds must be finite with lo < hi")
	ErrInvalidFitness = errors.New("objective returned an incomparable fitness")
)

// GenomeSyntaxError reports a non-bit character in a genome string
type GenomeSyntaxError struct {
	Offset int
	Char   rune
}

func (e *GenomeSyntaxError) Error() string {
	return fmt.Sprintf("invalid bit %q at offset %d", e.Char, e.Offset)
}

func validateRate(name string, rate float64) error {
	// NaN fails both comparisons
	if !(rate >= 0 && rate <= 1) {
		return fmt.Errorf("%s %v: %w", name, rate, ErrRate)
	}
	return nil
}
