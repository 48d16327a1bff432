package cubesim

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want SliceMove
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{"l", L},
		{"L'", LPrime},
		{"U", U},
		{"D`", DPrime},
		{"F2'", F2},
		{"B", B},
		{"M", M},
		{"E", E},
		{"S", S},
		{"M'", SliceMove{Axis: AxisX, Layer: 0, Rotation: Clockwise90}},
	}
	for _, tt := range tests {
		mv, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		got, err := mv.SliceMove()
		if err != nil {
			t.Errorf("%q.SliceMove(): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, in := range []string{"", "X", "R3", "Rw", "2"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMovesReportsPosition(t *testing.T) {
	_, err := ParseMoves("R U Z")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Fatalf("error = %v", err)
	}
	if got := err.Error(); got != `move 3: cubesim: invalid move notation: "Z"` {
		t.Errorf("error text = %q", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	const alg = "R U R' U' M2 E S'"
	moves, err := ParseMoves(alg)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != alg {
		t.Errorf("FormatMoves = %q, want %q", got, alg)
	}

	sm, err := SliceMoves(moves)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSliceMoves(sm); got != alg {
		t.Errorf("FormatSliceMoves = %q, want %q", got, alg)
	}
}

func TestMoveForCoversEverySliceMove(t *testing.T) {
	for _, axis := range Axes {
		for _, layer := range []float32{-1, 0, 1} {
			for _, rot := range RotationAmounts {
				s := SliceMove{Axis: axis, Layer: layer, Rotation: rot}
				mv, ok := MoveFor(s)
				if !ok {
					t.Errorf("no notation for %v", s)
					continue
				}
				back, err := mv.SliceMove()
				if err != nil {
					t.Fatal(err)
				}
				if back.Axis != s.Axis || back.Layer != s.Layer {
					t.Errorf("%v -> %s -> %v changed slice", s, mv, back)
				}
				if netQuarters(back.Rotation) != netQuarters(s.Rotation) {
					t.Errorf("%v -> %s -> %v changed turn", s, mv, back)
				}
			}
		}
	}
}

func netQuarters(r RotationAmount) int {
	q := r.Quarters()
	if !r.Clockwise() {
		q = -q
	}
	return (q%4 + 4) % 4
}

func TestThreeQuarterTurnNotation(t *testing.T) {
	s := SliceMove{Axis: AxisX, Layer: 1, Rotation: Clockwise270}
	if got := s.Notation(); got != "R'" {
		t.Errorf("Notation = %q, want R'", got)
	}
	s = SliceMove{Axis: AxisX, Layer: -1, Rotation: Clockwise270}
	if got := s.Notation(); got != "L" {
		t.Errorf("Notation = %q, want L", got)
	}
}

func TestMoveInverse(t *testing.T) {
	mv := Move{Face: FaceU, Turn: CW}
	if got := mv.Inverse().Notation(); got != "U'" {
		t.Errorf("Inverse = %q", got)
	}
	if got := (Move{Face: FaceU, Turn: Double}).Inverse().Notation(); got != "U2" {
		t.Errorf("Inverse of U2 = %q", got)
	}
	if R.Inverse() != RPrime {
		t.Errorf("R.Inverse() = %v", R.Inverse())
	}
}
