package cubesim

import "fmt"

// SliceMove is a request to turn every piece whose coordinate along Axis
// equals Layer by Rotation.
type SliceMove struct {
	Axis     Axis           `json:"axis"`
	Layer    float32        `json:"layer"`
	Rotation RotationAmount `json:"rotation"`
}

// NewSliceMove builds a validated SliceMove.
func NewSliceMove(axis Axis, layer float32, rotation RotationAmount) (SliceMove, error) {
	m := SliceMove{Axis: axis, Layer: layer, Rotation: rotation}
	if err := m.Validate(); err != nil {
		return SliceMove{}, err
	}
	return m, nil
}

// Validate checks that the axis and rotation are known and the layer is one
// of -1, 0 or 1.
func (m SliceMove) Validate() error {
	if !m.Axis.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, int(m.Axis))
	}
	if m.Layer != -1 && m.Layer != 0 && m.Layer != 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidLayer, m.Layer)
	}
	if !m.Rotation.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, int(m.Rotation))
	}
	return nil
}

// Inverse returns the move that undoes m.
func (m SliceMove) Inverse() SliceMove {
	m.Rotation = m.Rotation.Inverse()
	return m
}

// String returns a debug form such as "Y/+1/Clockwise90".
func (m SliceMove) String() string {
	return fmt.Sprintf("%s/%+d/%s", m.Axis, int(m.Layer), m.Rotation)
}
