// Package objective holds the functions the engine minimizes
package objective

import (
	"bitga/internal/ga"
)

// OneMax is the negated number of set bits; its minimum is the all-ones genome
func OneMax(g ga.Genome) (float64, error) {
	return -float64(g.Ones()), nil
}

// Quadratic evaluates 4x² + 3x − 10
func Quadratic(x float64) (float64, error) {
	return 4*x*x + 3*x - 10, nil
}

// QuadraticExpr is Quadratic written in polynomial file syntax
const QuadraticExpr = "4x^2 + 3x - 10"
