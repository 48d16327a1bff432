package cubesim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultRotateSpeed is the default turn rate in revolutions per second.
	DefaultRotateSpeed float32 = 1.0

	// MinRotateSpeed and MaxRotateSpeed bound the interactive speed control.
	MinRotateSpeed float32 = 0.1
	MaxRotateSpeed float32 = 10
)

// ClampRotateSpeed limits s to [MinRotateSpeed, MaxRotateSpeed].
func ClampRotateSpeed(s float32) float32 {
	return math32.Max(MinRotateSpeed, math32.Min(MaxRotateSpeed, s))
}

// PoseDelta is the incremental rotation applied to one piece during a tick.
// Angle follows the right-hand rule about Axis so a renderer can apply it
// directly as a rotation about the world origin.
type PoseDelta struct {
	Piece PieceID `json:"piece"`
	Axis  Axis    `json:"axis"`
	Angle float32 `json:"angle"`
}

// Animator advances the in-flight slice and snaps it back onto the lattice
// once it has turned its full angle.
type Animator struct {
	speed float32
}

// NewAnimator returns an animator turning at speed revolutions per second.
func NewAnimator(speed float32) (*Animator, error) {
	a := &Animator{}
	if err := a.SetSpeed(speed); err != nil {
		return nil, err
	}
	return a, nil
}

// Speed returns the turn rate in revolutions per second.
func (a *Animator) Speed() float32 {
	return a.speed
}

// SetSpeed changes the turn rate. The new rate applies from the next tick.
func (a *Animator) SetSpeed(speed float32) error {
	if !(speed > 0) || math32.IsInf(speed, 0) {
		return ErrInvalidRotateSpeed
	}
	a.speed = speed
	return nil
}

// Advance turns every tagged piece by one tick's worth of angle. The last
// step of a turn is clamped so the remaining angle lands on exactly zero.
func (a *Animator) Advance(r *Registry, dt float32) ([]PoseDelta, error) {
	if !validDelta(dt) {
		return nil, ErrNegativeDelta
	}
	if r.flight == nil {
		return nil, nil
	}

	step := a.speed * 2 * math32.Pi * dt
	deltas := make([]PoseDelta, 0, len(r.flight.Members))
	for _, id := range r.flight.Members {
		st := &r.states[id]
		rem := st.Slice.Remaining
		if !st.Animating || rem == 0 {
			continue
		}

		delta := math32.Copysign(step, rem)
		if (rem > 0 && rem-delta <= 0) || (rem < 0 && rem-delta >= 0) {
			delta = rem
			st.Slice.Remaining = 0
		} else {
			st.Slice.Remaining = rem - delta
		}
		if delta == 0 {
			continue
		}

		// Clockwise seen from the positive axis end is a negative
		// right-hand rotation.
		q := mgl32.QuatRotate(-delta, st.Slice.Axis.Unit())
		pose := &r.poses[id]
		pose.Position = q.Rotate(pose.Position)
		pose.Rotation = q.Mul(pose.Rotation)
		deltas = append(deltas, PoseDelta{Piece: id, Axis: st.Slice.Axis, Angle: -delta})
	}
	return deltas, nil
}

// Cleanup releases every piece that has finished turning, rounding its
// position to the nearest lattice point. When the last member of the flight
// is released the flight ends and its move is returned.
func (a *Animator) Cleanup(r *Registry) (*Flight, bool) {
	f := r.flight
	if f == nil {
		return nil, false
	}

	pending := 0
	for _, id := range f.Members {
		st := &r.states[id]
		if !st.Animating {
			continue
		}
		if st.Slice.Remaining != 0 {
			pending++
			continue
		}
		pose := &r.poses[id]
		for i, c := range pose.Position {
			// Avoid -0 so lattice comparisons and printing stay clean.
			pose.Position[i] = math32.Round(c) + 0
		}
		pose.Rotation = pose.Rotation.Normalize()
		*st = PieceState{}
	}
	if pending > 0 {
		return nil, false
	}
	r.flight = nil
	return f, true
}

func validDelta(dt float32) bool {
	return dt >= 0 && !math32.IsInf(dt, 1)
}
