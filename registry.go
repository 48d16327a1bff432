package cubesim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Flight is the slice currently turning.
type Flight struct {
	Move    SliceMove
	Source  MoveSource
	Members []PieceID
}

// Registry owns the 27 piece records, their poses and animation state.
// Records live in flat slices indexed by PieceID.
type Registry struct {
	pieces []Piece
	poses  []Pose
	states []PieceState
	flight *Flight
}

// NewRegistry spawns the 27 pieces at their home positions.
func NewRegistry(size float32) *Registry {
	r := &Registry{
		pieces: make([]Piece, 0, PieceCount),
		poses:  make([]Pose, PieceCount),
		states: make([]PieceState, PieceCount),
	}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				r.pieces = append(r.pieces, Piece{
					ID:      PieceID(len(r.pieces)),
					Initial: mgl32.Vec3{float32(x), float32(y), float32(z)},
					Size:    size,
				})
			}
		}
	}
	r.Reset()
	return r
}

// Reset returns every piece to its initial position and orientation and
// drops any in-flight slice.
func (r *Registry) Reset() {
	for i, p := range r.pieces {
		r.poses[i] = Pose{Position: p.Initial, Rotation: mgl32.QuatIdent()}
		r.states[i] = PieceState{}
	}
	r.flight = nil
}

// Len returns the number of pieces.
func (r *Registry) Len() int {
	return len(r.pieces)
}

// Piece returns the record for id.
func (r *Registry) Piece(id PieceID) (Piece, bool) {
	if !r.valid(id) {
		return Piece{}, false
	}
	return r.pieces[id], true
}

// Pose returns the current pose of id.
func (r *Registry) Pose(id PieceID) (Pose, bool) {
	if !r.valid(id) {
		return Pose{}, false
	}
	return r.poses[id], true
}

// State returns the animation state of id.
func (r *Registry) State(id PieceID) (PieceState, bool) {
	if !r.valid(id) {
		return PieceState{}, false
	}
	return r.states[id], true
}

// Pieces returns a copy of all piece records.
func (r *Registry) Pieces() []Piece {
	out := make([]Piece, len(r.pieces))
	copy(out, r.pieces)
	return out
}

// Poses returns a copy of all poses, indexed by PieceID.
func (r *Registry) Poses() []Pose {
	out := make([]Pose, len(r.poses))
	copy(out, r.poses)
	return out
}

// At returns the piece currently at lattice position pos.
func (r *Registry) At(pos mgl32.Vec3) (PieceID, bool) {
	for i, p := range r.poses {
		if p.Position == pos {
			return PieceID(i), true
		}
	}
	return 0, false
}

// Flight returns the in-flight slice, or nil when idle.
func (r *Registry) Flight() *Flight {
	return r.flight
}

// CheckLattice verifies that every piece sits on a distinct lattice point.
// It only holds while no slice is turning.
func (r *Registry) CheckLattice() error {
	if len(r.poses) != PieceCount {
		return fmt.Errorf("%w: have %d pieces", ErrLatticeViolation, len(r.poses))
	}
	seen := make(map[mgl32.Vec3]PieceID, len(r.poses))
	for i, p := range r.poses {
		for _, c := range p.Position {
			if c != -1 && c != 0 && c != 1 {
				return fmt.Errorf("%w: piece %d at %v", ErrLatticeViolation, i, p.Position)
			}
		}
		if other, dup := seen[p.Position]; dup {
			return fmt.Errorf("%w: pieces %d and %d share %v", ErrLatticeViolation, other, i, p.Position)
		}
		seen[p.Position] = PieceID(i)
	}
	return nil
}

func (r *Registry) valid(id PieceID) bool {
	return id >= 0 && int(id) < len(r.pieces)
}
