package cubesim

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is a sticker color.
type Color byte

const (
	White  Color = iota // Up face when solved
	Yellow              // Down face when solved
	Green               // Front face when solved
	Blue                // Back face when solved
	Red                 // Right face when solved
	Orange              // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Side indexes the six faces of a Facelets view.
type Side int

const (
	SideU Side = iota
	SideD
	SideF
	SideB
	SideR
	SideL
)

func (s Side) String() string {
	if s < SideU || s > SideL {
		return "?"
	}
	return [...]string{"U", "D", "F", "B", "R", "L"}[s]
}

// sideNormals are the outward normals, indexed by Side.
var sideNormals = [6]mgl32.Vec3{
	{0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {-1, 0, 0},
}

// Facelets is the sticker view of the puzzle. Each side is read from outside
// the cube, row by row:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U has the back edge on top, D the front edge; the four side faces have U
// on top.
type Facelets [6][9]Color

// SolvedFacelets returns the view of a solved puzzle.
func SolvedFacelets() Facelets {
	var f Facelets
	for s := range f {
		for i := range f[s] {
			f[s][i] = Color(s)
		}
	}
	return f
}

// Uniform reports whether every side shows a single color. Slice moves carry
// centers along, so a uniform cube need not have White on top.
func (f Facelets) Uniform() bool {
	for s := range f {
		for i := range f[s] {
			if f[s][i] != f[s][0] {
				return false
			}
		}
	}
	return true
}

// String renders the unfolded cube:
//
//	      U
//	L  F  R  B
//	      D
func (f Facelets) String() string {
	var b strings.Builder
	row := func(s Side, r int) {
		for c := 0; c < 3; c++ {
			b.WriteString(f[s][r*3+c].String())
			b.WriteByte(' ')
		}
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(SideU, r)
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		for _, s := range []Side{SideL, SideF, SideR, SideB} {
			row(s, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(SideD, r)
		b.WriteByte('\n')
	}
	return b.String()
}

// faceletIndex places a sticker at lattice position p on side s.
func faceletIndex(s Side, p [3]int) int {
	x, y, z := p[0], p[1], p[2]
	var row, col int
	switch s {
	case SideU:
		row, col = z+1, x+1
	case SideD:
		row, col = 1-z, x+1
	case SideF:
		row, col = 1-y, x+1
	case SideB:
		row, col = 1-y, 1-x
	case SideR:
		row, col = 1-y, 1-z
	case SideL:
		row, col = 1-y, z+1
	}
	return row*3 + col
}

// sideOf maps a unit lattice direction to the side it faces.
func sideOf(n [3]int) (Side, bool) {
	for s, v := range sideNormals {
		if int(v[0]) == n[0] && int(v[1]) == n[1] && int(v[2]) == n[2] {
			return Side(s), true
		}
	}
	return 0, false
}

func snap(v mgl32.Vec3) [3]int {
	return [3]int{int(math32.Round(v[0])), int(math32.Round(v[1])), int(math32.Round(v[2]))}
}

// facelets builds the sticker view from the registry poses. Every piece
// carries a sticker for each outer face of its home position, colored by
// that face.
func (r *Registry) facelets() (Facelets, error) {
	if err := r.CheckLattice(); err != nil {
		return Facelets{}, err
	}
	var f Facelets
	for i, piece := range r.pieces {
		pose := r.poses[i]
		pos := snap(pose.Position)
		for s, n := range sideNormals {
			if piece.Initial.Dot(n) != 1 {
				continue
			}
			side, ok := sideOf(snap(pose.Rotation.Rotate(n)))
			if !ok {
				return Facelets{}, ErrLatticeViolation
			}
			f[side][faceletIndex(side, pos)] = Color(s)
		}
	}
	return f, nil
}

// Facelets returns the sticker view. It fails with ErrLatticeViolation while
// a slice is turning.
func (p *Puzzle) Facelets() (Facelets, error) {
	return p.registry.facelets()
}

// Solved reports whether the puzzle is at rest with every side a single
// color.
func (p *Puzzle) Solved() bool {
	if !p.Idle() {
		return false
	}
	f, err := p.Facelets()
	return err == nil && f.Uniform()
}
