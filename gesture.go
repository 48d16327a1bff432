package cubesim

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDragThreshold is the pointer travel, in world units, needed before
// a drag turns into a move.
const DefaultDragThreshold float32 = 0.5

// faceEpsilon is the tolerance used to decide which face a hit point lies on.
const faceEpsilon float32 = 0.001

// face identifies one of the six outer faces by its normal.
type face struct {
	axis     Axis
	positive bool
}

type gestureKey struct {
	face face
	drag Axis
}

type gestureTurn struct {
	axis     Axis
	forward  RotationAmount // drag delta > 0
	backward RotationAmount // drag delta <= 0
}

// gestureTable maps a touched face and drag axis to the slice turn that
// carries the touched sticker along the drag.
var gestureTable = map[gestureKey]gestureTurn{
	{face{AxisX, true}, AxisY}:  {AxisZ, Counterclockwise90, Clockwise90},
	{face{AxisX, true}, AxisZ}:  {AxisY, Clockwise90, Counterclockwise90},
	{face{AxisX, false}, AxisY}: {AxisZ, Clockwise90, Counterclockwise90},
	{face{AxisX, false}, AxisZ}: {AxisY, Counterclockwise90, Clockwise90},

	{face{AxisY, true}, AxisX}:  {AxisZ, Clockwise90, Counterclockwise90},
	{face{AxisY, true}, AxisZ}:  {AxisX, Counterclockwise90, Clockwise90},
	{face{AxisY, false}, AxisX}: {AxisZ, Counterclockwise90, Clockwise90},
	{face{AxisY, false}, AxisZ}: {AxisX, Clockwise90, Counterclockwise90},

	{face{AxisZ, true}, AxisX}:  {AxisY, Counterclockwise90, Clockwise90},
	{face{AxisZ, true}, AxisY}:  {AxisX, Clockwise90, Counterclockwise90},
	{face{AxisZ, false}, AxisX}: {AxisY, Clockwise90, Counterclockwise90},
	{face{AxisZ, false}, AxisY}: {AxisX, Counterclockwise90, Clockwise90},
}

// ResolveMove turns a drag from start to end on the piece at piecePos into a
// quarter-turn slice move, assuming pieces of DefaultPieceSize. It reports
// false when start does not lie on an outer face.
func ResolveMove(piecePos, start, end mgl32.Vec3) (SliceMove, bool) {
	return resolveMove(faceExtent(DefaultPieceSize), piecePos, start, end)
}

func faceExtent(size float32) float32 {
	return 1 + size/2
}

func resolveMove(extent float32, piecePos, start, end mgl32.Vec3) (SliceMove, bool) {
	f, ok := touchedFace(extent, start)
	if !ok {
		return SliceMove{}, false
	}

	delta := end.Sub(start)
	a1, a2 := f.axis.Others()
	drag := a2
	if math32.Abs(delta[a1]) > math32.Abs(delta[a2]) {
		drag = a1
	}

	turn, ok := gestureTable[gestureKey{face: f, drag: drag}]
	if !ok {
		return SliceMove{}, false
	}
	rot := turn.backward
	if delta[drag] > 0 {
		rot = turn.forward
	}

	layer := math32.Round(piecePos[turn.axis]) + 0
	m := SliceMove{Axis: turn.axis, Layer: layer, Rotation: rot}
	if m.Validate() != nil {
		return SliceMove{}, false
	}
	return m, true
}

// touchedFace checks X, then Y, then Z for a coordinate on the outer shell.
func touchedFace(extent float32, p mgl32.Vec3) (face, bool) {
	for _, a := range Axes {
		if math32.Abs(math32.Abs(p[a])-extent) < faceEpsilon {
			return face{axis: a, positive: p[a] > 0}, true
		}
	}
	return face{}, false
}

// DragRecorder holds the state of an in-progress drag.
type DragRecorder struct {
	start *mgl32.Vec3
	piece *PieceID
}

// Active reports whether a drag start has been recorded.
func (d *DragRecorder) Active() bool {
	return d.start != nil && d.piece != nil
}

// Clear forgets the recorded drag.
func (d *DragRecorder) Clear() {
	d.start = nil
	d.piece = nil
}

// GestureRecognizer turns pointer drags over picked pieces into slice moves.
// Each drag yields at most one move.
type GestureRecognizer struct {
	threshold float32
	extent    float32
	rec       DragRecorder
}

// NewGestureRecognizer returns a recognizer for pieces of the given size.
func NewGestureRecognizer(threshold, pieceSize float32) *GestureRecognizer {
	return &GestureRecognizer{
		threshold: threshold,
		extent:    faceExtent(pieceSize),
	}
}

// Start records the picked piece and the hit point on its surface.
func (g *GestureRecognizer) Start(piece PieceID, hit mgl32.Vec3) {
	g.rec.start = &hit
	g.rec.piece = &piece
}

// Move feeds the current pointer hit point. Once the pointer has travelled
// further than the threshold it resolves a move from the picked piece's
// current position and clears the recorder, whether or not a move resolved.
func (g *GestureRecognizer) Move(r *Registry, current mgl32.Vec3) (SliceMove, bool) {
	if !g.rec.Active() {
		return SliceMove{}, false
	}
	start := *g.rec.start
	if current.Sub(start).Len() <= g.threshold {
		return SliceMove{}, false
	}

	pose, ok := r.Pose(*g.rec.piece)
	g.rec.Clear()
	if !ok {
		return SliceMove{}, false
	}
	return resolveMove(g.extent, pose.Position, start, current)
}

// End clears any recorded drag.
func (g *GestureRecognizer) End() {
	g.rec.Clear()
}

// Active reports whether a drag is in progress.
func (g *GestureRecognizer) Active() bool {
	return g.rec.Active()
}
