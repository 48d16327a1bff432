package cubesim

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScramblerLengthAndRange(t *testing.T) {
	s := NewScrambler(200, rand.New(rand.NewPCG(7, 7)), false)
	moves := s.Generate()
	require.Len(t, moves, 200)

	seen := map[RotationAmount]bool{}
	for _, m := range moves {
		assert.NoError(t, m.Validate())
		seen[m.Rotation] = true
	}
	assert.Equal(t, map[RotationAmount]bool{
		Clockwise90:        true,
		Clockwise180:       true,
		Counterclockwise90: true,
	}, seen)
}

func TestScramblerFullRotationSet(t *testing.T) {
	s := NewScrambler(500, rand.New(rand.NewPCG(3, 9)), true)
	seen := map[RotationAmount]bool{}
	for _, m := range s.Generate() {
		seen[m.Rotation] = true
	}
	assert.Len(t, seen, len(RotationAmounts))
}

func TestScramblerIsReproducible(t *testing.T) {
	a := NewScrambler(10, rand.New(rand.NewPCG(42, 1)), false).Generate()
	b := NewScrambler(10, rand.New(rand.NewPCG(42, 1)), false).Generate()
	assert.Equal(t, a, b)
}

func TestScramblerZeroLength(t *testing.T) {
	s := NewScrambler(0, nil, false)
	assert.Empty(t, s.Generate())
	assert.Len(t, s.GenerateN(3), 3)
}

func TestScrambleLengthOption(t *testing.T) {
	p := newTestPuzzle(t, WithScrambleLength(12))
	assert.Len(t, p.EnqueueScramble(), 12)
	assert.Equal(t, 12, p.QueueLen())
}
