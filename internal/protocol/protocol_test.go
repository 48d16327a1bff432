package protocol

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestParseRoundTripsBuildFrame(t *testing.T) {
	payload := []byte{0x04, 0x00, 0x07, 0x03}
	msg, err := Parse(BuildFrame(MsgTypeRotation, payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Type != MsgTypeRotation {
		t.Errorf("type = 0x%02X, want 0x%02X", msg.Type, MsgTypeRotation)
	}
	if string(msg.Payload) != string(payload) {
		t.Errorf("payload = %v, want %v", msg.Payload, payload)
	}
	if msg.TypeName() != "rotation" {
		t.Errorf("TypeName = %q", msg.TypeName())
	}
}

func TestParseRejectsBadFrames(t *testing.T) {
	good := BuildFrame(MsgTypeBattery, []byte{80})

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0x00

	badSum := append([]byte(nil), good...)
	badSum[len(badSum)-3]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte{0x2A, 0x01}, ErrMessageTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"checksum", badSum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
		{"truncated", good[:len(good)-2], ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildCommand(t *testing.T) {
	got := BuildCommand(CmdRequestBattery)
	want := []byte{0x2A, 0x01, 0x32, 0x2A + 0x01 + 0x32, 0x0D, 0x0A}
	if string(got) != string(want) {
		t.Errorf("BuildCommand = % X, want % X", got, want)
	}
}

func TestDecodeRotation(t *testing.T) {
	rots, err := DecodeRotation([]byte{0x08, 0x00, 0x05, 0x06})
	if err != nil {
		t.Fatalf("DecodeRotation: %v", err)
	}
	if len(rots) != 2 {
		t.Fatalf("got %d rotations, want 2", len(rots))
	}
	if rots[0].Color != ColorRed || !rots[0].Clockwise {
		t.Errorf("first rotation = %+v, want red clockwise", rots[0])
	}
	if rots[1].Color != ColorWhite || rots[1].Clockwise {
		t.Errorf("second rotation = %+v, want white counter-clockwise", rots[1])
	}
	if rots[1].CenterOrientation != 0x06 {
		t.Errorf("center orientation = %d, want 6", rots[1].CenterOrientation)
	}
}

func TestDecodeRotationErrors(t *testing.T) {
	if _, err := DecodeRotation([]byte{0x01}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("odd payload error = %v", err)
	}
	if _, err := DecodeRotation([]byte{0x0C, 0x00}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("unknown face code error = %v", err)
	}
}

func TestEncodeRotationMatchesDecode(t *testing.T) {
	for _, c := range colorByIndex {
		for _, cw := range []bool{true, false} {
			b, err := EncodeRotation(c, cw)
			if err != nil {
				t.Fatalf("EncodeRotation(%s, %v): %v", c, cw, err)
			}
			rots, err := DecodeRotation(b)
			if err != nil {
				t.Fatalf("DecodeRotation: %v", err)
			}
			if rots[0].Color != c || rots[0].Clockwise != cw {
				t.Errorf("got %+v, want %s clockwise=%v", rots[0], c, cw)
			}
		}
	}
}

func TestDecodeBatteryAndType(t *testing.T) {
	level, err := DecodeBattery([]byte{73})
	if err != nil || level != 73 {
		t.Errorf("DecodeBattery = %d, %v", level, err)
	}
	if _, err := DecodeBattery(nil); err == nil {
		t.Error("expected error for empty battery payload")
	}
	if name, _ := DecodeCubeType([]byte{0x01}); name != "edge" {
		t.Errorf("cube type = %q, want edge", name)
	}
}

func TestDecodeOrientation(t *testing.T) {
	q, err := DecodeOrientation([]byte("0#0#0#100\x5a\r\n"))
	if err != nil {
		t.Fatalf("DecodeOrientation: %v", err)
	}
	if q.W < 0.9999 || q.V[0] != 0 || q.V[1] != 0 || q.V[2] != 0 {
		t.Errorf("orientation = %+v, want identity", q)
	}
	if _, err := DecodeOrientation([]byte("1#2#3")); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("short orientation error = %v", err)
	}
}

func TestDecodeOfflineStats(t *testing.T) {
	got, err := DecodeOfflineStats([]byte("120#95#3"))
	if err != nil {
		t.Fatalf("DecodeOfflineStats: %v", err)
	}
	want := OfflineStats{Moves: 120, Seconds: 95, Solves: 3}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if _, err := DecodeOfflineStats([]byte("1#2")); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("short stats error = %v", err)
	}
}

func TestUpFront(t *testing.T) {
	if up, front := UpFront(mgl32.QuatIdent()); up != "U" || front != "F" {
		t.Errorf("identity = %s/%s, want U/F", up, front)
	}
	// Half turn about X puts D on top and B toward the viewer.
	q := mgl32.QuatRotate(math32.Pi, mgl32.Vec3{1, 0, 0})
	if up, front := UpFront(q); up != "D" || front != "B" {
		t.Errorf("x2 = %s/%s, want D/B", up, front)
	}
}
