package ga

import (
	"fmt"
	"math"
)

// Decoder maps a genome to the domain value handed to the objective
type Decoder[T any] interface {
	Decode(Genome) T
}

// Identity passes the raw bits through to the objective
type Identity struct{}

// Decode returns a copy of the genome
func (Identity) Decode(g Genome) Genome {
	return g.Clone()
}

// Interval maps a genome, read as an unsigned big-endian integer, linearly
// onto [Lo, Hi]: Lo + (n / 2^len) * (Hi - Lo)
type Interval struct {
	Lo float64
	Hi float64
}

// NewInterval validates the bounds
func NewInterval(lo, hi float64) (Interval, error) {
	iv := Interval{Lo: lo, Hi: hi}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate reports whether the interval is usable for decoding
func (iv Interval) Validate() error {
	if math.IsNaN(iv.Lo) || math.IsNaN(iv.Hi) || math.IsInf(iv.Lo, 0) || math.IsInf(iv.Hi, 0) || !(iv.Lo < iv.Hi) {
		return fmt.Errorf("[%v, %v]: %w", iv.Lo, iv.Hi, ErrInterval)
	}
	return nil
}

// Decode maps the genome onto the interval.
// Bits accumulate into a float64 so genomes wider than 64 bits still decode;
// results are exact up to 53 bits and stay monotone beyond that.
func (iv Interval) Decode(g Genome) float64 {
	var n float64
	for _, b := range g {
		n = n*2 + float64(b)
	}
	return iv.Lo + n/math.Exp2(float64(len(g)))*(iv.Hi-iv.Lo)
}
