// Package cubesim is the slice-rotation engine of an interactive 3x3x3
// twisty puzzle.
//
// # Features
//
//   - 27-piece registry with exact lattice positions
//   - FIFO move queue with single-flight slice animation and snap
//   - Pointer-drag gesture recognition
//   - Random scrambles
//   - Standard notation (R U R' U', M E S)
//   - Optional GoCube smart cube input over Bluetooth LE
//
// # Quick Start
//
// Drive the puzzle from a host loop:
//
//	p, err := cubesim.New(cubesim.WithRotateSpeed(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.OnSliceComplete(func(m cubesim.SliceMove, _ cubesim.MoveSource) {
//	    fmt.Println("Turned:", m.Notation())
//	})
//
//	p.EnqueueNotation("R U R' U'")
//	for !p.Idle() {
//	    report, err := p.Tick(1.0 / 60)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    render(report.Deltas)
//	}
//
// # Orientation
//
// Positions use a right-handed frame with +Y up, +X right and +Z toward the
// viewer. A clockwise slice turn is clockwise when seen from the positive end
// of its axis, so R, U and F are Clockwise90 turns of the +1 layers about X,
// Y and Z. PoseDelta angles follow the right-hand rule for renderers.
//
// # Gestures
//
// A host that raycasts pointer events onto pieces forwards them as
//
//	p.DragStart(piece, hit)
//	p.DragMove(current) // queues at most one move per drag
//	p.DragEnd()
//
// Hit points are in world units with the outer faces at ±1.5.
//
// # Stickers
//
// Facelets derives the six sticker faces from the piece poses once the
// puzzle is at rest; Solved reports whether every side shows one color.
package cubesim
