package objective

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitga/internal/ga"
)

func TestOneMax(t *testing.T) {
	v, err := OneMax(ga.Genome{1, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, -3.0, v)
}

func TestQuadratic(t *testing.T) {
	v, err := Quadratic(2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	v, err = Quadratic(-2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"4x^2 + 3x - 10": "4*(x**2) + 3*x - 10",
		"x^3 - 2":        "(x**3) - 2",
		"(x+1)^2":        "(x+1)**2",
		"2.5x":           "2.5*x",
		"3(x - 1)":       "3*(x - 1)",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestPolynomialMatchesQuadratic(t *testing.T) {
	p, err := ParsePolynomial(QuadraticExpr)
	require.NoError(t, err)

	for _, x := range []float64{-100, -2, -1.5, 0, 0.3, 1.25, 7, 99.2} {
		got, err := p.Eval(x)
		require.NoError(t, err)
		want, _ := Quadratic(x)
		assert.InDelta(t, want, got, 1e-9, "x=%v", x)
	}
}

func TestPolynomialPowerBindsTighterThanProduct(t *testing.T) {
	p, err := ParsePolynomial("2x^3 - x^2")
	require.NoError(t, err)

	v, err := p.Eval(3)
	require.NoError(t, err)
	assert.Equal(t, 45.0, v)
}

func TestParsePolynomialErrors(t *testing.T) {
	for _, src := range []string{"", "   ", "4x +", "y^2 + 1"} {
		_, err := ParsePolynomial(src)
		assert.Error(t, err, "%q", src)
	}
}

func TestReadPolynomials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polys.txt")
	content := "# sample\n4x^2 + 3x - 10\n\nx^2 - 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	polys, err := ReadPolynomials(path)
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.Equal(t, "4x^2 + 3x - 10", polys[0].String())

	v, err := polys[1].Eval(2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestReadPolynomialsReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("x^2\nx +\n"), 0644))

	_, err := ReadPolynomials(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:2")
}

func TestReadPolynomialsMissingFile(t *testing.T) {
	_, err := ReadPolynomials(filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPolynomialDrivesIntervalEngine(t *testing.T) {
	p, err := ParsePolynomial("x^2 - 4")
	require.NoError(t, err)

	e, err := ga.NewIntervalEngine(8, 100, p.Objective(), -10, 10, ga.Options{
		Rand:       rand.New(rand.NewSource(99)),
		Comparison: ga.CompareAbsolute,
	})
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background(), 100, 0.85, 0.125))

	stats, err := e.Stats()
	require.NoError(t, err)
	assert.InDelta(t, 2, math.Abs(stats.BestValue), 0.25)
}
