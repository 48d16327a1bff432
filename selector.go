package cubesim

// SelectSlice admits the next queued move when no slice is turning. Every
// piece whose current coordinate along the move's axis equals the layer is
// tagged with the move's full signed angle.
//
// It returns the admitted flight and true when a move was consumed. A move
// that matches no piece is still consumed; the returned flight then has no
// members and the registry stays idle. Malformed moves pushed directly onto
// the queue are consumed the same way.
func SelectSlice(q *MoveQueue, r *Registry) (*Flight, bool) {
	if r.flight != nil {
		return nil, false
	}
	next, ok := q.Pop()
	if !ok {
		return nil, false
	}

	f := &Flight{Move: next.Move, Source: next.Source}
	if next.Move.Validate() != nil {
		return f, true
	}

	angle := next.Move.Rotation.Angle()
	for i, pose := range r.poses {
		if pose.Position[next.Move.Axis] != next.Move.Layer {
			continue
		}
		r.states[i] = PieceState{
			Animating: true,
			Slice: MovableSlice{
				Axis:      next.Move.Axis,
				Rotation:  next.Move.Rotation,
				Remaining: angle,
			},
		}
		f.Members = append(f.Members, PieceID(i))
	}
	if len(f.Members) > 0 {
		r.flight = f
	}
	return f, true
}
