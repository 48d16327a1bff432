package cubesim

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis is one of the three principal axes of the puzzle.
type Axis int

const (
	AxisX Axis = iota // Left to right
	AxisY             // Bottom to top
	AxisZ             // Back to front
)

// Axes lists the axes in priority order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// Valid reports whether a is one of AxisX, AxisY or AxisZ.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Unit returns the positive unit vector along a.
func (a Axis) Unit() mgl32.Vec3 {
	var v mgl32.Vec3
	if a.Valid() {
		v[a] = 1
	}
	return v
}

// Others returns the two remaining axes in X, Y, Z order.
func (a Axis) Others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y" or "z" (any case).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// RotationAmount is the direction and size of a slice turn.
//
// Clockwise is judged looking at the slice from the positive end of its axis
// toward the origin.
type RotationAmount int

const (
	Clockwise90         RotationAmount = iota + 1 // Quarter turn clockwise
	Clockwise180                                  // Half turn clockwise
	Clockwise270                                  // Three quarters clockwise
	Counterclockwise90                            // Quarter turn counterclockwise
	Counterclockwise180                           // Half turn counterclockwise
	Counterclockwise270                           // Three quarters counterclockwise
)

// RotationAmounts lists every rotation amount.
var RotationAmounts = []RotationAmount{
	Clockwise90, Clockwise180, Clockwise270,
	Counterclockwise90, Counterclockwise180, Counterclockwise270,
}

var rotationNames = map[RotationAmount]string{
	Clockwise90:         "Clockwise90",
	Clockwise180:        "Clockwise180",
	Clockwise270:        "Clockwise270",
	Counterclockwise90:  "Counterclockwise90",
	Counterclockwise180: "Counterclockwise180",
	Counterclockwise270: "Counterclockwise270",
}

// Valid reports whether r is a known rotation amount.
func (r RotationAmount) Valid() bool {
	return r >= Clockwise90 && r <= Counterclockwise270
}

// Clockwise reports whether r turns clockwise.
func (r RotationAmount) Clockwise() bool {
	return r >= Clockwise90 && r <= Clockwise270
}

// Quarters returns the number of quarter turns in r (1, 2 or 3).
func (r RotationAmount) Quarters() int {
	switch r {
	case Clockwise90, Counterclockwise90:
		return 1
	case Clockwise180, Counterclockwise180:
		return 2
	case Clockwise270, Counterclockwise270:
		return 3
	}
	return 0
}

// Angle returns the signed angle of r in radians. Clockwise amounts are
// positive.
func (r RotationAmount) Angle() float32 {
	a := float32(r.Quarters()) * math32.Pi / 2
	if !r.Clockwise() {
		return -a
	}
	return a
}

// Inverse returns the rotation that undoes r.
func (r RotationAmount) Inverse() RotationAmount {
	switch r {
	case Clockwise90:
		return Counterclockwise90
	case Clockwise180:
		return Counterclockwise180
	case Clockwise270:
		return Counterclockwise270
	case Counterclockwise90:
		return Clockwise90
	case Counterclockwise180:
		return Clockwise180
	case Counterclockwise270:
		return Clockwise270
	}
	return r
}

func (r RotationAmount) String() string {
	if name, ok := rotationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RotationAmount(%d)", int(r))
}

// ParseRotation parses a rotation name such as "Clockwise90" (any case).
func ParseRotation(s string) (RotationAmount, error) {
	for r, name := range rotationNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRotation, s)
}
