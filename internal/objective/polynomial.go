package objective

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PaesslerAG/gval"

	"bitga/internal/ga"
)

// Variable is the name bound to the decoded value during evaluation
const Variable = "x"

var (
	// Arithmetic only: no function calls, no string or boolean operators
	polyLang = gval.Arithmetic()

	powerTerm   = regexp.MustCompile(`([0-9.]+|x)\s*\^\s*(-?[0-9.]+)`)
	implicitMul = regexp.MustCompile(`([0-9.)])\s*(x\b|\()`)
)

// Polynomial is a compiled expression in x
type Polynomial struct {
	Source string // as written
	Expr   string // normalized, as compiled
	eval   gval.Evaluable
}

// Normalize rewrites the file syntax into gval arithmetic:
// "4x^2" becomes "4*(x**2)".
func Normalize(src string) string {
	s := strings.TrimSpace(src)
	s = powerTerm.ReplaceAllString(s, "($1**$2)")
	s = strings.ReplaceAll(s, "^", "**")
	s = implicitMul.ReplaceAllString(s, "$1*$2")
	return s
}

// ParsePolynomial compiles src once. Evaluation walks the compiled tree and
// never re-parses the text.
func ParsePolynomial(src string) (*Polynomial, error) {
	expr := Normalize(src)
	if expr == "" {
		return nil, fmt.Errorf("empty polynomial")
	}
	eval, err := polyLang.NewEvaluable(expr)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	p := &Polynomial{Source: strings.TrimSpace(src), Expr: expr, eval: eval}

	// Unknown identifiers only surface at evaluation time
	if _, err := p.Eval(0); err != nil {
		return nil, err
	}
	return p, nil
}

// Eval evaluates the polynomial at x
func (p *Polynomial) Eval(x float64) (float64, error) {
	v, err := p.eval.EvalFloat64(context.Background(), map[string]interface{}{Variable: x})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q at %v: %w", p.Source, x, err)
	}
	return v, nil
}

// Objective adapts the polynomial for an interval engine
func (p *Polynomial) Objective() ga.Objective[float64] {
	return p.Eval
}

func (p *Polynomial) String() string {
	return p.Source
}

// ReadPolynomials loads one polynomial per line. Blank lines and lines
// starting with '#' are skipped.
func ReadPolynomials(path string) ([]*Polynomial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var polys []*Polynomial
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := ParsePolynomial(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		polys = append(polys, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return polys, nil
}
