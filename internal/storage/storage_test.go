package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Errorf("schema version = %d, want %d", v, len(migrations))
	}

	// Reopening must not re-run migrations.
	path := db.Path()
	db.Close()
	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	if v, _ := again.SchemaVersion(); v != len(migrations) {
		t.Errorf("schema version after reopen = %d", v)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, err := sessions.Create("timekeeping", "GoCube_1234", "")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	for i, n := range []string{"R", "U", "R'"} {
		err := moves.Append(MoveRecord{
			SessionID: id, Seq: i + 1, Tick: uint64(10 * (i + 1)), Time: now,
			Axis: "X", Layer: 1, Rotation: "Clockwise90", Notation: n, Source: "gesture",
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := moves.RecordReset(id, 3); err != nil {
		t.Fatal(err)
	}
	if err := sessions.End(id); err != nil {
		t.Fatal(err)
	}

	s, err := sessions.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if s.MoveCount != 3 || s.PlayMode != "timekeeping" || s.EndedAt == nil {
		t.Errorf("session = %+v", s)
	}
	if s.DeviceName == nil || *s.DeviceName != "GoCube_1234" {
		t.Errorf("device name = %v", s.DeviceName)
	}
	if s.Notes != nil {
		t.Errorf("notes = %v, want nil", *s.Notes)
	}

	got, err := moves.List(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[2].Notation != "R'" || got[2].Tick != 30 {
		t.Errorf("moves = %+v", got)
	}
	if n, _ := moves.ResetCount(id); n != 1 {
		t.Errorf("resets = %d, want 1", n)
	}
	resets, err := moves.ListResets(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(resets) != 1 || resets[0].AfterSeq != 3 || resets[0].SessionID != id || resets[0].Time.IsZero() {
		t.Errorf("ListResets = %+v", resets)
	}

	latest, err := sessions.Latest()
	if err != nil || latest.SessionID != id {
		t.Errorf("Latest = %v, %v", latest, err)
	}
}

func TestDuplicateSeqRejected(t *testing.T) {
	db := openTestDB(t)
	id, _ := NewSessionRepository(db).Create("practice", "", "")
	moves := NewMoveRepository(db)
	rec := MoveRecord{SessionID: id, Seq: 1, Time: time.Now(), Axis: "Y", Rotation: "Clockwise90", Notation: "E'", Source: "program"}
	if err := moves.Append(rec); err != nil {
		t.Fatal(err)
	}
	if err := moves.Append(rec); err == nil {
		t.Error("expected duplicate seq to fail")
	}
}

func TestMissingSession(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	if _, err := repo.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get error = %v", err)
	}
	if err := repo.End("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("End error = %v", err)
	}
	if _, err := repo.Latest(); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Latest error = %v", err)
	}
}

func TestOrientations(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("practice", "GoCube_1234", "")
	if err != nil {
		t.Fatal(err)
	}
	repo := NewOrientationRepository(db)

	last, err := repo.Last(id)
	if err != nil || last != nil {
		t.Fatalf("Last on empty session = %v, %v", last, err)
	}

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	faces := [][2]string{{"U", "F"}, {"F", "D"}, {"D", "B"}}
	for i, f := range faces {
		err := repo.Append(OrientationRecord{
			SessionID: id, Time: start.Add(time.Duration(i) * time.Second),
			AfterSeq: i, UpFace: f[0], FrontFace: f[1],
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d orientations, want 3", len(all))
	}
	if all[1].UpFace != "F" || all[1].FrontFace != "D" || !all[1].Time.Equal(start.Add(time.Second)) {
		t.Errorf("second orientation = %+v", all[1])
	}

	last, err = repo.Last(id)
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || last.UpFace != "D" || last.AfterSeq != 2 {
		t.Errorf("Last = %+v", last)
	}
}
