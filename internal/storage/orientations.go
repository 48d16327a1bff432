package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// OrientationRecord is a change of which faces of a physical cube point up
// and toward the solver.
type OrientationRecord struct {
	SessionID string    `json:"session_id"`
	Time      time.Time `json:"ts"`
	AfterSeq  int       `json:"after_seq"`
	UpFace    string    `json:"up"`
	FrontFace string    `json:"front"`
}

// OrientationRepository stores device orientation changes.
type OrientationRepository struct {
	db *DB
}

// NewOrientationRepository creates a new orientation repository.
func NewOrientationRepository(db *DB) *OrientationRepository {
	return &OrientationRepository{db: db}
}

// Append stores an orientation change.
func (r *OrientationRepository) Append(o OrientationRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO orientations (session_id, ts, after_seq, up_face, front_face)
		VALUES (?, ?, ?, ?, ?)
	`, o.SessionID, o.Time.UTC().Format(timeLayout), o.AfterSeq, o.UpFace, o.FrontFace)
	if err != nil {
		return fmt.Errorf("failed to append orientation: %w", err)
	}
	return nil
}

// List returns a session's orientation changes in time order.
func (r *OrientationRepository) List(sessionID string) ([]OrientationRecord, error) {
	rows, err := r.db.Query(`
		SELECT session_id, ts, after_seq, up_face, front_face
		FROM orientations
		WHERE session_id = ?
		ORDER BY ts, orientation_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orientations: %w", err)
	}
	defer rows.Close()

	var out []OrientationRecord
	for rows.Next() {
		o, err := scanOrientation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Last returns the most recent orientation of a session, or nil if none
// was recorded.
func (r *OrientationRepository) Last(sessionID string) (*OrientationRecord, error) {
	row := r.db.QueryRow(`
		SELECT session_id, ts, after_seq, up_face, front_face
		FROM orientations
		WHERE session_id = ?
		ORDER BY ts DESC, orientation_id DESC
		LIMIT 1
	`, sessionID)
	o, err := scanOrientation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrientation(row scanner) (OrientationRecord, error) {
	var (
		o  OrientationRecord
		ts string
	)
	if err := row.Scan(&o.SessionID, &ts, &o.AfterSeq, &o.UpFace, &o.FrontFace); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, err
		}
		return o, fmt.Errorf("failed to scan orientation: %w", err)
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return o, fmt.Errorf("bad orientation timestamp %q: %w", ts, err)
	}
	o.Time = t
	return o, nil
}
