package ga

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitsOf(n uint64, length int) Genome {
	g := make(Genome, length)
	for i := length - 1; i >= 0; i-- {
		g[i] = uint8(n & 1)
		n >>= 1
	}
	return g
}

func TestIntervalDecodeEndpoints(t *testing.T) {
	iv := Interval{Lo: -100, Hi: 100}

	assert.Equal(t, -100.0, iv.Decode(bitsOf(0, 8)))
	assert.Equal(t, 0.0, iv.Decode(bitsOf(128, 8)))
	// The all-ones genome stops one step short of Hi
	assert.InDelta(t, 100-200.0/256, iv.Decode(bitsOf(255, 8)), 1e-12)
}

func TestIntervalDecodeIsOrderPreserving(t *testing.T) {
	iv := Interval{Lo: -3.5, Hi: 7}
	prev := math.Inf(-1)
	for n := uint64(0); n < 1<<10; n++ {
		v := iv.Decode(bitsOf(n, 10))
		assert.LessOrEqual(t, prev, v, "n=%d", n)
		prev = v
	}
}

func TestIntervalDecodeWideGenome(t *testing.T) {
	iv := Interval{Lo: 0, Hi: 1}
	g := make(Genome, 80)
	g[0] = 1

	assert.InDelta(t, 0.5, iv.Decode(g), 1e-12)
}

func TestNewIntervalRejectsDegenerateBounds(t *testing.T) {
	for _, tc := range []struct {
		name   string
		lo, hi float64
	}{
		{"equal", 1, 1},
		{"inverted", 2, 1},
		{"nan", math.NaN(), 1},
		{"inf", 0, math.Inf(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInterval(tc.lo, tc.hi)
			require.ErrorIs(t, err, ErrInterval)
		})
	}
}

func TestIdentityDecodeCopies(t *testing.T) {
	g := Genome{1, 1, 0}
	out := Identity{}.Decode(g)
	out[0] = 0

	assert.Equal(t, Genome{1, 1, 0}, g)
}
