package cubesim

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame float32 = 1.0 / 60

func newTestPuzzle(t *testing.T, opts ...Option) *Puzzle {
	t.Helper()
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func pieceFrom(t *testing.T, p *Puzzle, initial mgl32.Vec3) PieceID {
	t.Helper()
	for _, pc := range p.Pieces() {
		if pc.Initial == initial {
			return pc.ID
		}
	}
	t.Fatalf("no piece starts at %v", initial)
	return 0
}

func positionOf(t *testing.T, p *Puzzle, id PieceID) mgl32.Vec3 {
	t.Helper()
	pose, ok := p.Pose(id)
	require.True(t, ok)
	return pose.Position
}

func settle(t *testing.T, p *Puzzle) {
	t.Helper()
	_, err := p.Settle(frame, 10000)
	require.NoError(t, err)
}

func TestNewPuzzleIsOnLattice(t *testing.T) {
	p := newTestPuzzle(t)
	assert.Len(t, p.Pieces(), PieceCount)
	assert.NoError(t, p.CheckLattice())
	assert.False(t, p.Animating())
	assert.Equal(t, 0, p.QueueLen())
	assert.Equal(t, DefaultRotateSpeed, p.RotateSpeed())

	for _, pc := range p.Pieces() {
		assert.Equal(t, pc.Initial, positionOf(t, p, pc.ID))
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero speed", WithRotateSpeed(0), ErrInvalidRotateSpeed},
		{"negative speed", WithRotateSpeed(-1), ErrInvalidRotateSpeed},
		{"nan speed", WithRotateSpeed(math32.NaN()), ErrInvalidRotateSpeed},
		{"negative threshold", WithDragThreshold(-0.1), ErrInvalidDragThreshold},
		{"negative scramble", WithScrambleLength(-1), ErrInvalidScrambleLength},
		{"zero piece size", WithPieceSize(0), ErrInvalidPieceSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTopLayerClockwise(t *testing.T) {
	p := newTestPuzzle(t)
	edge := pieceFrom(t, p, mgl32.Vec3{1, 1, 0})
	corner := pieceFrom(t, p, mgl32.Vec3{1, 1, 1})
	bottom := pieceFrom(t, p, mgl32.Vec3{1, -1, 0})

	m, err := NewSliceMove(AxisY, 1, Clockwise90)
	require.NoError(t, err)
	require.NoError(t, p.Enqueue(m))
	settle(t, p)

	assert.Equal(t, mgl32.Vec3{0, 1, 1}, positionOf(t, p, edge))
	assert.Equal(t, mgl32.Vec3{-1, 1, 1}, positionOf(t, p, corner))
	assert.Equal(t, mgl32.Vec3{1, -1, 0}, positionOf(t, p, bottom))
	assert.NoError(t, p.CheckLattice())
}

func TestTopLayerClockwiseMatchesUPermutation(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(U))
	settle(t, p)

	// Top layer cycles front -> left -> back -> right.
	cycle := []mgl32.Vec3{{0, 1, 1}, {-1, 1, 0}, {0, 1, -1}, {1, 1, 0}}
	for i, from := range cycle {
		id := pieceFrom(t, p, from)
		assert.Equal(t, cycle[(i+1)%len(cycle)], positionOf(t, p, id), "piece from %v", from)
	}
}

func TestSingleFlight(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(R, U, F))

	selected := 0
	var members []PieceID
	for i := 0; i < 10000 && !p.Idle(); i++ {
		before := p.QueueLen()
		wasAnimating := p.Animating()

		rep, err := p.Tick(frame)
		require.NoError(t, err)

		if rep.Selected != nil {
			selected++
			assert.False(t, wasAnimating, "admitted a move while another was turning")
			assert.Equal(t, before-1, p.QueueLen())
			f := p.registry.Flight()
			require.NotNil(t, f)
			members = f.Members
		} else {
			assert.Equal(t, before, p.QueueLen())
		}

		// Only members of the current flight ever move.
		for _, d := range rep.Deltas {
			assert.Contains(t, members, d.Piece)
		}
	}
	assert.Equal(t, 3, selected)
	assert.NoError(t, p.CheckLattice())
}

func TestFlightMembersAreTheSlice(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(SliceMove{Axis: AxisZ, Layer: 0, Rotation: Clockwise180}))

	rep, err := p.Tick(0)
	require.NoError(t, err)
	require.NotNil(t, rep.Selected)

	f := p.registry.Flight()
	require.NotNil(t, f)
	assert.Len(t, f.Members, 9)
	for _, id := range f.Members {
		assert.Equal(t, float32(0), positionOf(t, p, id)[AxisZ])
		st, _ := p.registry.State(id)
		assert.True(t, st.Animating)
		assert.Equal(t, math32.Pi, st.Slice.Remaining)
	}
}

func TestAngleConservation(t *testing.T) {
	for _, dt := range []float32{0.0007, frame, 0.1, 0.3, 1, 25} {
		for _, rot := range RotationAmounts {
			p := newTestPuzzle(t)
			m := SliceMove{Axis: AxisX, Layer: -1, Rotation: rot}
			require.NoError(t, p.Enqueue(m))

			total := map[PieceID]float32{}
			for i := 0; i < 100000 && !p.Idle(); i++ {
				rep, err := p.Tick(dt)
				require.NoError(t, err)
				for _, d := range rep.Deltas {
					total[d.Piece] += d.Angle
				}
			}
			require.True(t, p.Idle())
			require.Len(t, total, 9)
			for id, sum := range total {
				// Deltas use the right-hand rule, so clockwise sums are negative.
				assert.InDelta(t, -rot.Angle(), sum, 1e-3, "dt=%v rot=%v piece=%d", dt, rot, id)
			}
			assert.NoError(t, p.CheckLattice())
		}
	}
}

func TestRemainingMovesMonotonicallyToZero(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(SliceMove{Axis: AxisY, Layer: 0, Rotation: Counterclockwise270}))

	_, err := p.Tick(0)
	require.NoError(t, err)
	prev := p.Remaining()
	assert.InDelta(t, -3*math32.Pi/2, prev, 1e-6)

	for p.Animating() {
		// Peek before cleanup by advancing the animator directly.
		_, err := p.animator.Advance(p.registry, 0.05)
		require.NoError(t, err)
		rem := p.Remaining()
		assert.LessOrEqual(t, math32.Abs(rem), math32.Abs(prev))
		assert.LessOrEqual(t, rem, float32(0))
		prev = rem
		p.animator.Cleanup(p.registry)
	}
	assert.NoError(t, p.CheckLattice())
}

func TestZeroDeltaMakesNoProgress(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(R))
	_, err := p.Tick(frame)
	require.NoError(t, err)

	rem := p.Remaining()
	poses := p.Poses()
	for i := 0; i < 5; i++ {
		rep, err := p.Tick(0)
		require.NoError(t, err)
		assert.Empty(t, rep.Deltas)
	}
	assert.Equal(t, rem, p.Remaining())
	assert.Equal(t, poses, p.Poses())
}

func TestNegativeDeltaLeavesStateUntouched(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(R, U))
	_, err := p.Tick(frame)
	require.NoError(t, err)

	rem, poses, queued, ticks := p.Remaining(), p.Poses(), p.QueueLen(), p.Ticks()

	for _, dt := range []float32{-frame, math32.NaN(), math32.Inf(1)} {
		_, err = p.Tick(dt)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNegativeDelta)

		var tickErr *TickError
		require.True(t, errors.As(err, &tickErr))
		assert.Equal(t, ticks, tickErr.Tick)
	}

	assert.Equal(t, rem, p.Remaining())
	assert.Equal(t, poses, p.Poses())
	assert.Equal(t, queued, p.QueueLen())
	assert.Equal(t, ticks, p.Ticks())
}

func TestSetRotateSpeed(t *testing.T) {
	p := newTestPuzzle(t)
	assert.ErrorIs(t, p.SetRotateSpeed(0), ErrInvalidRotateSpeed)
	assert.ErrorIs(t, p.SetRotateSpeed(-2), ErrInvalidRotateSpeed)
	assert.Equal(t, DefaultRotateSpeed, p.RotateSpeed())

	require.NoError(t, p.SetRotateSpeed(4))
	require.NoError(t, p.Enqueue(R))

	// A quarter turn at 4 rev/s takes 1/16 s, so four frames.
	n, err := p.Settle(frame, 100)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestClampRotateSpeed(t *testing.T) {
	assert.Equal(t, MinRotateSpeed, ClampRotateSpeed(0))
	assert.Equal(t, MaxRotateSpeed, ClampRotateSpeed(50))
	assert.Equal(t, float32(3), ClampRotateSpeed(3))
}

func TestEnqueueRejectsMalformedMoves(t *testing.T) {
	p := newTestPuzzle(t)
	err := p.Enqueue(R, SliceMove{Axis: AxisY, Layer: 2, Rotation: Clockwise90})
	assert.ErrorIs(t, err, ErrInvalidLayer)
	assert.Equal(t, 0, p.QueueLen(), "a rejected batch queues nothing")

	assert.ErrorIs(t, p.Enqueue(SliceMove{Axis: Axis(7), Rotation: Clockwise90}), ErrInvalidAxis)
	assert.ErrorIs(t, p.Enqueue(SliceMove{Axis: AxisX}), ErrInvalidRotation)
}

func TestQueueAppliesInOrder(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(SexyMove...))

	var done []SliceMove
	p.OnSliceComplete(func(m SliceMove, src MoveSource) {
		assert.Equal(t, SourceProgram, src)
		done = append(done, m)
	})
	settle(t, p)
	assert.Equal(t, SexyMove, done)
}

func TestSexyMoveSixTimesRestores(t *testing.T) {
	p := newTestPuzzle(t, WithRotateSpeed(MaxRotateSpeed))
	for i := 0; i < 6; i++ {
		require.NoError(t, p.Enqueue(SexyMove...))
	}
	settle(t, p)

	for _, pc := range p.Pieces() {
		assert.Equal(t, pc.Initial, positionOf(t, p, pc.ID))
	}
}

func TestFourQuarterTurnsRestoreOrientation(t *testing.T) {
	p := newTestPuzzle(t)
	corner := pieceFrom(t, p, mgl32.Vec3{1, 1, 1})
	for i := 0; i < 4; i++ {
		require.NoError(t, p.Enqueue(F))
	}
	settle(t, p)

	pose, _ := p.Pose(corner)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, pose.Position)
	// q and -q are the same rotation.
	assert.InDelta(t, 1, math32.Abs(pose.Rotation.W), 1e-4)
}

func TestScrambleQueuesAndDrains(t *testing.T) {
	p := newTestPuzzle(t, WithRand(rand.New(rand.NewPCG(1, 2))))
	moves := p.EnqueueScramble()
	require.Len(t, moves, DefaultScrambleLength)
	assert.Equal(t, 5, p.QueueLen())
	assert.Equal(t, moves, p.Queued())

	want := 5
	for i := 0; i < 10000 && !p.Idle(); i++ {
		rep, err := p.Tick(frame)
		require.NoError(t, err)
		if rep.Selected != nil {
			want--
		}
		assert.Equal(t, want, p.QueueLen())
	}
	assert.Equal(t, 0, want)
	assert.NoError(t, p.CheckLattice())
}

func TestResetRestoresInitialPositions(t *testing.T) {
	p := newTestPuzzle(t)
	p.EnqueueScramble()
	for i := 0; i < 20; i++ {
		_, err := p.Tick(frame)
		require.NoError(t, err)
	}
	require.True(t, p.Animating())

	resets := 0
	p.OnReset(func() { resets++ })
	p.Reset()

	assert.Equal(t, 1, resets)
	assert.Equal(t, 0, p.QueueLen())
	assert.False(t, p.Animating())
	assert.NoError(t, p.CheckLattice())
	for _, pc := range p.Pieces() {
		pose, _ := p.Pose(pc.ID)
		assert.Equal(t, pc.Initial, pose.Position)
		assert.Equal(t, mgl32.QuatIdent(), pose.Rotation)
	}

	rep, err := p.Tick(frame)
	require.NoError(t, err)
	assert.Nil(t, rep.Selected)
	assert.Empty(t, rep.Deltas)
}

func TestSettleGivesUp(t *testing.T) {
	p := newTestPuzzle(t)
	require.NoError(t, p.Enqueue(R))
	_, err := p.Settle(0, 5)
	assert.ErrorIs(t, err, ErrNotSettled)
}

func TestEnqueueNotation(t *testing.T) {
	p := newTestPuzzle(t)
	moves, err := p.EnqueueNotation("R U R' U'")
	require.NoError(t, err)
	assert.Equal(t, SexyMove, moves)
	assert.Equal(t, 4, p.QueueLen())

	_, err = p.EnqueueNotation("R Q")
	assert.ErrorIs(t, err, ErrInvalidNotation)
	assert.Equal(t, 4, p.QueueLen())
}
