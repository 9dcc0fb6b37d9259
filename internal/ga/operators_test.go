package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentSelectReturnsMember(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := NewPopulation(20, 6, rng).Genomes
	scores := make([]float64, len(pop))
	for i := range scores {
		scores[i] = rng.Float64()
	}

	for i := 0; i < 200; i++ {
		winner := TournamentSelect(pop, scores, 3, rng)
		found := false
		for _, g := range pop {
			if &g[0] == &winner[0] {
				found = true
				break
			}
		}
		assert.True(t, found, "winner is not a population member")
	}
}

func TestTournamentSelectIndexPrefersLowerScore(t *testing.T) {
	scores := []float64{5, 4, 3, 2, 1, 0}
	seed := int64(11)

	// Replay the same draws to compute the expected winner
	rng := rand.New(rand.NewSource(seed))
	draws := []int{rng.Intn(6), rng.Intn(6), rng.Intn(6)}
	want := draws[0]
	for _, d := range draws[1:] {
		if scores[d] < scores[want] {
			want = d
		}
	}

	got := TournamentSelectIndex(scores, 3, rand.New(rand.NewSource(seed)))
	assert.Equal(t, want, got)
}

func TestTournamentSelectIndexTieKeepsFirstDraw(t *testing.T) {
	scores := []float64{1, 1, 1, 1}
	seed := int64(3)
	first := rand.New(rand.NewSource(seed)).Intn(len(scores))

	got := TournamentSelectIndex(scores, 5, rand.New(rand.NewSource(seed)))
	assert.Equal(t, first, got)
}

func TestTournamentSelectIndexEmpty(t *testing.T) {
	assert.Equal(t, -1, TournamentSelectIndex(nil, 3, rand.New(rand.NewSource(1))))
}

func TestCrossoverRateZeroCopiesParents(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p1 := Genome{0, 0, 0, 0, 0, 0}
	p2 := Genome{1, 1, 1, 1, 1, 1}

	for i := 0; i < 50; i++ {
		c1, c2 := SinglePointCrossover(p1, p2, 0, rng)
		assert.Equal(t, p1, c1)
		assert.Equal(t, p2, c2)
		c1[0] = 1
		assert.Equal(t, uint8(0), p1[0], "child must not alias parent")
	}
}

func TestCrossoverAtSwapsTails(t *testing.T) {
	p1 := Genome{0, 0, 0, 0, 0, 0, 0, 0}
	p2 := Genome{1, 1, 1, 1, 1, 1, 1, 1}

	for pt := 1; pt <= len(p1)-2; pt++ {
		c1, c2 := CrossoverAt(p1, p2, pt)
		assert.Equal(t, p1[:pt], c1[:pt])
		assert.Equal(t, p2[pt:], c1[pt:])
		assert.Equal(t, p2[:pt], c2[:pt])
		assert.Equal(t, p1[pt:], c2[pt:])
	}
}

func TestSinglePointCrossoverRateOne(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p1 := Genome{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	p2 := Genome{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	for i := 0; i < 100; i++ {
		c1, c2 := SinglePointCrossover(p1, p2, 1, rng)
		require.Len(t, c1, len(p1))
		require.Len(t, c2, len(p1))

		// c1 is a run of zeros followed by ones; the cut is where it switches
		pt := len(c1) - c1.Ones()
		assert.GreaterOrEqual(t, pt, 1)
		assert.LessOrEqual(t, pt, len(p1)-2)
		assert.Equal(t, p1[:pt], c1[:pt])
		assert.Equal(t, p2[pt:], c1[pt:])
		assert.Equal(t, len(c2)-pt, len(c2)-c2.Ones())
	}
}

func TestCutPointBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	assert.Equal(t, 1, CutPoint(2, rng))
	assert.Equal(t, 1, CutPoint(3, rng))

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		pt := CutPoint(8, rng)
		require.GreaterOrEqual(t, pt, 1)
		require.LessOrEqual(t, pt, 6)
		seen[pt] = true
	}
	assert.Len(t, seen, 6)
}

func TestMutateRateZeroAndOne(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	g := Genome{1, 0, 1, 1, 0, 0, 1}

	Mutate(g, 0, rng)
	assert.Equal(t, Genome{1, 0, 1, 1, 0, 0, 1}, g)

	Mutate(g, 1, rng)
	assert.Equal(t, Genome{0, 1, 0, 0, 1, 1, 0}, g)
}

func TestBreedKeepsSizeAndBits(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	parents := NewPopulation(10, 12, rng).Genomes

	children := Breed(parents, 0.9, 0.1, rng)
	require.Len(t, children, len(parents))
	for _, c := range children {
		require.Len(t, c, 12)
		for _, b := range c {
			assert.LessOrEqual(t, b, uint8(1))
		}
	}
}

func TestBreedWithoutVariationCopiesPairsInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	parents := NewPopulation(6, 5, rng).Genomes

	children := Breed(parents, 0, 0, rng)
	assert.Equal(t, parents, children)
}

func TestComparison(t *testing.T) {
	assert.True(t, CompareRaw.Better(-5, 1))
	assert.False(t, CompareRaw.Better(1, 1))
	assert.False(t, CompareAbsolute.Better(-5, 1))
	assert.True(t, CompareAbsolute.Better(-0.5, 1))

	c, err := ParseComparison("Absolute")
	require.NoError(t, err)
	assert.Equal(t, CompareAbsolute, c)

	_, err = ParseComparison("signed")
	assert.Error(t, err)
}
