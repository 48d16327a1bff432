package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OfflineStats are the counters the cube keeps while disconnected.
type OfflineStats struct {
	Moves   int `json:"moves"`
	Seconds int `json:"seconds"`
	Solves  int `json:"solves"`
}

// DecodeOfflineStats parses the ASCII "moves#seconds#solves" payload.
func DecodeOfflineStats(payload []byte) (OfflineStats, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 3 {
		return OfflineStats{}, fmt.Errorf("%w: offline stats has %d parts", ErrInvalidPayload, len(parts))
	}
	var v [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(leadingNumber(part))
		if err != nil {
			return OfflineStats{}, fmt.Errorf("%w: offline stats field %d: %v", ErrInvalidPayload, i, err)
		}
		v[i] = n
	}
	return OfflineStats{Moves: v[0], Seconds: v[1], Solves: v[2]}, nil
}

// UpFront returns the face letters pointing up and toward the viewer once
// the cube is rotated by q.
func UpFront(q mgl32.Quat) (up, front string) {
	return faceOf(q.Rotate(mgl32.Vec3{0, 1, 0})), faceOf(q.Rotate(mgl32.Vec3{0, 0, 1}))
}

func faceOf(v mgl32.Vec3) string {
	ax, ay, az := math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2])
	switch {
	case ay >= ax && ay >= az:
		if v[1] > 0 {
			return "U"
		}
		return "D"
	case az >= ax:
		if v[2] > 0 {
			return "F"
		}
		return "B"
	case v[0] > 0:
		return "R"
	default:
		return "L"
	}
}
