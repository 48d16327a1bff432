package cli

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func TestMergeByTime(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(s int) time.Time { return t0.Add(time.Duration(s) * time.Second) }

	moves := []storage.MoveRecord{
		{Seq: 1, Time: at(1), Notation: "R"},
		{Seq: 2, Time: at(3), Notation: "U"},
	}
	orientations := []storage.OrientationRecord{
		{Time: at(0), UpFace: "U"},
		{Time: at(2), UpFace: "F"},
		{Time: at(3), UpFace: "D"},
		{Time: at(9), UpFace: "B"},
	}

	got := mergeByTime(moves, nil, orientations)
	want := []string{"orientation", "move", "orientation", "move", "orientation", "orientation"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i, l := range got {
		if l.Kind != want[i] {
			t.Errorf("line %d kind = %s, want %s", i, l.Kind, want[i])
		}
	}
	if got[3].Move.Notation != "U" || got[4].Orientation.UpFace != "D" {
		t.Errorf("tie at t=3 not ordered move first: %+v %+v", got[3], got[4])
	}
}

func TestMergeByTimePlacesResets(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(s int) time.Time { return t0.Add(time.Duration(s) * time.Second) }

	moves := []storage.MoveRecord{
		{Seq: 1, Time: at(1), Notation: "R"},
		{Seq: 2, Time: at(2), Notation: "U"},
		{Seq: 3, Time: at(5), Notation: "F"},
	}
	resets := []storage.ResetRecord{
		{AfterSeq: 0, Time: at(0)},
		{AfterSeq: 2, Time: at(3)},
		{AfterSeq: 3, Time: at(6)},
	}
	orientations := []storage.OrientationRecord{{Time: at(4), UpFace: "F"}}

	got := mergeByTime(moves, resets, orientations)
	want := []string{"reset", "move", "move", "reset", "orientation", "move", "reset"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i, l := range got {
		if l.Kind != want[i] {
			t.Errorf("line %d kind = %s, want %s", i, l.Kind, want[i])
		}
	}
	if got[3].Reset == nil || got[3].Reset.AfterSeq != 2 {
		t.Errorf("line 3 = %+v, want reset after seq 2", got[3])
	}
}

func TestFormatCounts(t *testing.T) {
	if got := formatCounts(nil); got != "-" {
		t.Errorf("formatCounts(nil) = %q", got)
	}
	got := formatCounts(map[string]int{"scramble": 5, "gesture": 2})
	if got != "gesture=2 scramble=5" {
		t.Errorf("formatCounts = %q", got)
	}
}
