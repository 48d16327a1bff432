package cubesim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faceletsOf(t *testing.T, p *Puzzle) Facelets {
	t.Helper()
	f, err := p.Facelets()
	require.NoError(t, err)
	return f
}

func TestFaceletsStartSolved(t *testing.T) {
	p := newTestPuzzle(t)
	assert.Equal(t, SolvedFacelets(), faceletsOf(t, p))
	assert.True(t, p.Solved())
}

func TestFaceletsAfterU(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(U))
	settle(t, p)

	f := faceletsOf(t, p)
	top := func(s Side) []Color { return f[s][0:3] }
	assert.Equal(t, []Color{Red, Red, Red}, top(SideF))
	assert.Equal(t, []Color{Blue, Blue, Blue}, top(SideR))
	assert.Equal(t, []Color{Orange, Orange, Orange}, top(SideB))
	assert.Equal(t, []Color{Green, Green, Green}, top(SideL))
	assert.Equal(t, [9]Color{White, White, White, White, White, White, White, White, White}, f[SideU])
	assert.False(t, p.Solved())
}

func TestFaceletsAfterR(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(R))
	settle(t, p)

	f := faceletsOf(t, p)
	for _, i := range []int{2, 5, 8} {
		assert.Equal(t, Green, f[SideU][i], "U[%d]", i)
		assert.Equal(t, White, f[SideB][i-2], "B[%d]", i-2)
	}
	assert.Equal(t, White, f[SideU][0])
}

func TestFaceletsSexyMoveReturnsSolved(t *testing.T) {
	p := newTestPuzzle(t)
	for i := 0; i < 6; i++ {
		require.NoError(t, p.Enqueue(SexyMove...))
	}
	settle(t, p)
	assert.True(t, p.Solved())
}

func TestSliceMovesCarryCenters(t *testing.T) {
	p := newTestPuzzle(t)
	_, err := p.EnqueueNotation("M2")
	require.NoError(t, err)
	settle(t, p)

	f := faceletsOf(t, p)
	assert.Equal(t, Yellow, f[SideU][4])
	assert.Equal(t, Blue, f[SideF][4])
	assert.False(t, f.Uniform())

	// A whole-cube turn keeps every side uniform with a new top color.
	_, err = p.EnqueueNotation("R2 L2")
	require.NoError(t, err)
	settle(t, p)
	assert.True(t, p.Solved())
	assert.Equal(t, Yellow, faceletsOf(t, p)[SideU][0])
}

func TestFaceletsUnavailableMidTurn(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(F))
	_, err := p.Tick(frame)
	require.NoError(t, err)
	_, err = p.Facelets()
	assert.ErrorIs(t, err, ErrLatticeViolation)
	assert.False(t, p.Solved())
}

func TestFaceletsString(t *testing.T) {
	s := SolvedFacelets().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "      W W W ", lines[0])
	assert.Equal(t, "O O O G G G R R R B B B ", lines[3])
	assert.Equal(t, "      Y Y Y ", lines[8])
}
