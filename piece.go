package cubesim

import "github.com/go-gl/mathgl/mgl32"

// PieceCount is the number of pieces in a 3x3x3 puzzle, including the hidden
// core.
const PieceCount = 27

// DefaultPieceSize is the edge length of a piece in lattice units.
const DefaultPieceSize float32 = 1.0

// PieceID indexes a piece in the registry. IDs are stable for the life of a
// puzzle and survive Reset.
type PieceID int

// Piece is the immutable description of one piece.
type Piece struct {
	ID      PieceID
	Initial mgl32.Vec3 // lattice position at spawn, each coordinate in {-1, 0, 1}
	Size    float32
}

// HasUpFace reports whether the piece spawned in the top (+Y) layer.
func (p Piece) HasUpFace() bool { return p.Initial[AxisY] == 1 }

// HasDownFace reports whether the piece spawned in the bottom (-Y) layer.
func (p Piece) HasDownFace() bool { return p.Initial[AxisY] == -1 }

// HasRightFace reports whether the piece spawned in the right (+X) layer.
func (p Piece) HasRightFace() bool { return p.Initial[AxisX] == 1 }

// HasLeftFace reports whether the piece spawned in the left (-X) layer.
func (p Piece) HasLeftFace() bool { return p.Initial[AxisX] == -1 }

// HasFrontFace reports whether the piece spawned in the front (+Z) layer.
func (p Piece) HasFrontFace() bool { return p.Initial[AxisZ] == 1 }

// HasBackFace reports whether the piece spawned in the back (-Z) layer.
func (p Piece) HasBackFace() bool { return p.Initial[AxisZ] == -1 }

// Stickers returns the number of outward faces the piece carries: 0 for the
// core, 1 for centers, 2 for edges and 3 for corners.
func (p Piece) Stickers() int {
	n := 0
	for _, c := range p.Initial {
		if c != 0 {
			n++
		}
	}
	return n
}

// Pose is the current placement of a piece.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// MovableSlice tags a piece that belongs to the slice currently turning.
type MovableSlice struct {
	Axis      Axis
	Rotation  RotationAmount
	Remaining float32 // signed radians left to turn, reaches exactly 0
}

// PieceState is the per-piece animation state.
type PieceState struct {
	Animating bool
	Slice     MovableSlice
}
