package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a center color as reported by the cube.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorWhite  Color = "white"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
)

// colorByIndex follows the face code order: code/2 indexes this table.
var colorByIndex = [...]Color{ColorBlue, ColorGreen, ColorWhite, ColorYellow, ColorRed, ColorOrange}

// Rotation is one face turn reported by the cube.
type Rotation struct {
	FaceCode          byte  `json:"face_code"` // 0x00-0x0B
	CenterOrientation byte  `json:"center_orientation"`
	Clockwise         bool  `json:"clockwise"`
	Color             Color `json:"color"`
}

// DecodeRotation decodes a rotation payload made of [face_dir][center] byte
// pairs. Even face codes turn clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload has odd length %d", ErrInvalidPayload, len(payload))
	}

	rotations := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorByIndex) {
			return nil, fmt.Errorf("%w: face code 0x%02X", ErrInvalidPayload, code)
		}
		rotations = append(rotations, Rotation{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             colorByIndex[idx],
		})
	}
	return rotations, nil
}

// EncodeRotation is the inverse of DecodeRotation for a single turn.
func EncodeRotation(c Color, clockwise bool) ([]byte, error) {
	for i, known := range colorByIndex {
		if known != c {
			continue
		}
		code := byte(i * 2)
		if !clockwise {
			code++
		}
		return []byte{code, 0}, nil
	}
	return nil, fmt.Errorf("%w: color %q", ErrInvalidPayload, c)
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: empty battery payload", ErrInvalidPayload)
	}
	return int(payload[0]), nil
}

// DecodeCubeType returns "standard" or "edge".
func DecodeCubeType(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", fmt.Errorf("%w: empty cube type payload", ErrInvalidPayload)
	}
	if payload[0] == 0x01 {
		return "edge", nil
	}
	return "standard", nil
}

// DecodeOrientation parses the ASCII "x#y#z#w" orientation payload into a
// unit quaternion. Trailing bytes after w are ignored.
func DecodeOrientation(payload []byte) (mgl32.Quat, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return mgl32.Quat{}, fmt.Errorf("%w: orientation has %d parts", ErrInvalidPayload, len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return mgl32.Quat{}, fmt.Errorf("%w: orientation component %d: %v", ErrInvalidPayload, i, err)
		}
		v[i] = float32(f)
	}

	q := mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 {
		return mgl32.QuatIdent(), nil
	}
	return q.Normalize(), nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}
