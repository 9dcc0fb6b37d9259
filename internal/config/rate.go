package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/gval"
	"gopkg.in/yaml.v3"

	"bitga/internal/ga"
)

// Rate is a probability written either as a number or as an arithmetic
// expression over genome_length, e.g. "1/genome_length"
type Rate string

var rateLang = gval.Arithmetic()

// Resolve evaluates the rate for the given genome length and checks it is
// a probability
func (r Rate) Resolve(genomeLength int) (float64, error) {
	expr := strings.TrimSpace(string(r))
	if v, err := strconv.ParseFloat(expr, 64); err == nil {
		return checkRate(v)
	}
	eval, err := rateLang.NewEvaluable(expr)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", expr, err)
	}
	v, err := eval.EvalFloat64(context.Background(), map[string]interface{}{
		"genome_length": float64(genomeLength),
	})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return checkRate(v)
}

func checkRate(v float64) (float64, error) {
	if !(v >= 0 && v <= 1) {
		return 0, fmt.Errorf("%v: %w", v, ga.ErrRate)
	}
	return v, nil
}

// UnmarshalYAML accepts both numeric and string scalars
func (r *Rate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rate must be a scalar", value.Line)
	}
	*r = Rate(value.Value)
	return nil
}

// UnmarshalTOML accepts floats, integers and strings
func (r *Rate) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case float64:
		*r = Rate(strconv.FormatFloat(t, 'g', -1, 64))
	case int64:
		*r = Rate(strconv.FormatInt(t, 10))
	case string:
		*r = Rate(t)
	default:
		return fmt.Errorf("rate must be a number or expression, got %T", v)
	}
	return nil
}
