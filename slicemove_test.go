package cubesim

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewSliceMoveValidation(t *testing.T) {
	tests := []struct {
		name  string
		axis  Axis
		layer float32
		rot   RotationAmount
		want  error
	}{
		{"ok", AxisY, 1, Clockwise90, nil},
		{"middle", AxisZ, 0, Counterclockwise270, nil},
		{"layer too big", AxisY, 2, Clockwise90, ErrInvalidLayer},
		{"fractional layer", AxisY, 0.5, Clockwise90, ErrInvalidLayer},
		{"bad axis", Axis(3), 0, Clockwise90, ErrInvalidAxis},
		{"zero rotation", AxisX, 0, 0, ErrInvalidRotation},
		{"bad rotation", AxisX, 0, RotationAmount(9), ErrInvalidRotation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewSliceMove(tt.axis, tt.layer, tt.rot)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.Equal(t, SliceMove{Axis: tt.axis, Layer: tt.layer, Rotation: tt.rot}, m)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestRotationAngles(t *testing.T) {
	half := math32.Pi / 2
	assert.Equal(t, half, Clockwise90.Angle())
	assert.Equal(t, math32.Pi, Clockwise180.Angle())
	assert.InDelta(t, 3*half, Clockwise270.Angle(), 1e-6)
	assert.Equal(t, -half, Counterclockwise90.Angle())
	assert.Equal(t, -math32.Pi, Counterclockwise180.Angle())
	assert.InDelta(t, -3*half, Counterclockwise270.Angle(), 1e-6)

	for _, r := range RotationAmounts {
		assert.Equal(t, -r.Angle(), r.Inverse().Angle(), "%v", r)
	}
}

func TestAxisHelpers(t *testing.T) {
	a, b := AxisY.Others()
	assert.Equal(t, AxisX, a)
	assert.Equal(t, AxisZ, b)

	ax, err := ParseAxis("z")
	assert.NoError(t, err)
	assert.Equal(t, AxisZ, ax)
	_, err = ParseAxis("w")
	assert.ErrorIs(t, err, ErrInvalidAxis)

	r, err := ParseRotation("counterclockwise180")
	assert.NoError(t, err)
	assert.Equal(t, Counterclockwise180, r)
}

func TestSliceMoveString(t *testing.T) {
	assert.Equal(t, "Y/+1/Clockwise90", U.String())
	assert.Equal(t, "X/+0/Counterclockwise90", M.String())
	assert.Equal(t, "Z/-1/Counterclockwise90", B.String())
}
