package ga

import (
	"math/rand"
	"strings"
)

// Genome is a fixed-length sequence of bits, one bit per element (0 or 1)
type Genome []uint8

// RandomGenome generates a genome with every bit drawn uniformly from {0,1}
func RandomGenome(length int, rng *rand.Rand) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = uint8(rng.Intn(2))
	}
	return g
}

// Clone makes a copy of a genome
func (g Genome) Clone() Genome {
	dst := make(Genome, len(g))
	copy(dst, g)
	return dst
}

// Ones returns the number of set bits
func (g Genome) Ones() int {
	n := 0
	for _, b := range g {
		n += int(b)
	}
	return n
}

// String renders the genome as a bit string, most significant bit first
func (g Genome) String() string {
	var sb strings.Builder
	sb.Grow(len(g))
	for _, b := range g {
		if b == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// ParseGenome parses a bit string produced by String
func ParseGenome(s string) (Genome, error) {
	g := make(Genome, len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			g[i] = 1
		default:
			return nil, &GenomeSyntaxError{Offset: i, Char: c}
		}
	}
	return g, nil
}
