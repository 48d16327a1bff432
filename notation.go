package cubesim

import (
	"fmt"
	"strings"
	"time"
)

// Face is a layer name in standard cube notation.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceM Face = "M" // Middle, between L and R, turns like L
	FaceE Face = "E" // Equator, between U and D, turns like D
	FaceS Face = "S" // Standing, between F and B, turns like F
)

// Turn is the direction and size of a face turn, judged looking at the face.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// faceSlice places a face on the lattice. sign is +1 when the face's own
// clockwise is clockwise about the positive axis.
type faceSlice struct {
	axis  Axis
	layer float32
	sign  int
}

var faceSlices = map[Face]faceSlice{
	FaceR: {AxisX, 1, 1},
	FaceL: {AxisX, -1, -1},
	FaceU: {AxisY, 1, 1},
	FaceD: {AxisY, -1, -1},
	FaceF: {AxisZ, 1, 1},
	FaceB: {AxisZ, -1, -1},
	FaceM: {AxisX, 0, -1},
	FaceE: {AxisY, 0, -1},
	FaceS: {AxisZ, 0, 1},
}

// Move is a single face turn in standard notation with an optional timestamp.
type Move struct {
	Face Face      // Which layer to turn
	Turn Turn      // Direction and amount
	Time time.Time // When the move occurred (optional)
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, M, E'
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string.
func (m Move) String() string {
	return m.Notation()
}

// SliceMove converts m to the slice move it describes.
func (m Move) SliceMove() (SliceMove, error) {
	fs, ok := faceSlices[m.Face]
	if !ok {
		return SliceMove{}, fmt.Errorf("%w: face %q", ErrInvalidNotation, m.Face)
	}
	var quarters int
	switch m.Turn {
	case CW:
		quarters = fs.sign
	case CCW:
		quarters = -fs.sign
	case Double:
		quarters = 2 * fs.sign
	default:
		return SliceMove{}, fmt.Errorf("%w: turn %d", ErrInvalidNotation, m.Turn)
	}
	return SliceMove{Axis: fs.axis, Layer: fs.layer, Rotation: rotationFromQuarters(quarters)}, nil
}

func rotationFromQuarters(q int) RotationAmount {
	switch q {
	case 1:
		return Clockwise90
	case 2:
		return Clockwise180
	case 3:
		return Clockwise270
	case -1:
		return Counterclockwise90
	case -2:
		return Counterclockwise180
	default:
		return Counterclockwise270
	}
}

// MoveFor returns the notation move equivalent to s. Three-quarter turns are
// written as the opposite quarter turn.
func MoveFor(s SliceMove) (Move, bool) {
	if s.Validate() != nil {
		return Move{}, false
	}
	q := s.Rotation.Quarters()
	if !s.Rotation.Clockwise() {
		q = -q
	}
	for face, fs := range faceSlices {
		if fs.axis != s.Axis || fs.layer != s.Layer {
			continue
		}
		switch ((q*fs.sign)%4 + 4) % 4 {
		case 1:
			return Move{Face: face, Turn: CW}, true
		case 2:
			return Move{Face: face, Turn: Double}, true
		case 3:
			return Move{Face: face, Turn: CCW}, true
		}
	}
	return Move{}, false
}

// Notation returns m in standard cube notation, such as "U" or "M'".
func (m SliceMove) Notation() string {
	if mv, ok := MoveFor(m); ok {
		return mv.Notation()
	}
	return m.String()
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', R2, M, E', S2
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face := Face(strings.ToUpper(s[:1]))
	if _, ok := faceSlices[face]; !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves such as "R U R' U'".
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, move)
	}
	return moves, nil
}

// ParseSliceMoves parses notation straight into slice moves.
func ParseSliceMoves(s string) ([]SliceMove, error) {
	moves, err := ParseMoves(s)
	if err != nil {
		return nil, err
	}
	return SliceMoves(moves)
}

// SliceMoves converts notation moves to slice moves.
func SliceMoves(moves []Move) ([]SliceMove, error) {
	out := make([]SliceMove, len(moves))
	for i, m := range moves {
		sm, err := m.SliceMove()
		if err != nil {
			return nil, err
		}
		out[i] = sm
	}
	return out, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// FormatSliceMoves formats slice moves as a space-separated notation string.
func FormatSliceMoves(moves []SliceMove) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// EnqueueNotation parses s and queues the resulting moves.
func (p *Puzzle) EnqueueNotation(s string) ([]SliceMove, error) {
	moves, err := ParseSliceMoves(s)
	if err != nil {
		return nil, err
	}
	if err := p.EnqueueFrom(SourceNotation, moves...); err != nil {
		return nil, err
	}
	return moves, nil
}
