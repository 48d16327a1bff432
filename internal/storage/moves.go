package storage

import (
	"fmt"
	"time"
)

// MoveRecord is one completed slice move in a session.
type MoveRecord struct {
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Tick      uint64    `json:"tick"`
	Time      time.Time `json:"ts"`
	Axis      string    `json:"axis"`
	Layer     int       `json:"layer"`
	Rotation  string    `json:"rotation"`
	Notation  string    `json:"notation"`
	Source    string    `json:"source"`
}

// ResetRecord is a reset that happened after move AfterSeq.
type ResetRecord struct {
	SessionID string    `json:"session_id"`
	AfterSeq  int       `json:"after_seq"`
	Time      time.Time `json:"ts"`
}

// MoveRepository appends and reads session moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Append stores a move. Seq must be unique within the session.
func (r *MoveRepository) Append(m MoveRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO moves (session_id, seq, tick, ts, axis, layer, rotation, notation, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.SessionID, m.Seq, int64(m.Tick), m.Time.UTC().Format(timeLayout),
		m.Axis, m.Layer, m.Rotation, m.Notation, m.Source)
	if err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}
	return nil
}

// RecordReset notes that the puzzle was reset after move afterSeq.
func (r *MoveRepository) RecordReset(sessionID string, afterSeq int) error {
	_, err := r.db.Exec(`INSERT INTO resets (session_id, after_seq, ts) VALUES (?, ?, ?)`,
		sessionID, afterSeq, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to record reset: %w", err)
	}
	return nil
}

// ResetCount returns the number of resets in a session.
func (r *MoveRepository) ResetCount(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM resets WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count resets: %w", err)
	}
	return n, nil
}

// ListResets returns the resets of a session in the order they happened.
func (r *MoveRepository) ListResets(sessionID string) ([]ResetRecord, error) {
	rows, err := r.db.Query(`
		SELECT after_seq, ts FROM resets WHERE session_id = ? ORDER BY reset_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resets: %w", err)
	}
	defer rows.Close()

	var resets []ResetRecord
	for rows.Next() {
		rs := ResetRecord{SessionID: sessionID}
		var ts string
		if err := rows.Scan(&rs.AfterSeq, &ts); err != nil {
			return nil, err
		}
		if rs.Time, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("bad ts %q: %w", ts, err)
		}
		resets = append(resets, rs)
	}
	return resets, rows.Err()
}

// List returns the moves of a session in order.
func (r *MoveRepository) List(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT seq, tick, ts, axis, layer, rotation, notation, source
		FROM moves WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		m := MoveRecord{SessionID: sessionID}
		var ts string
		var tick int64
		if err := rows.Scan(&m.Seq, &tick, &ts, &m.Axis, &m.Layer, &m.Rotation, &m.Notation, &m.Source); err != nil {
			return nil, err
		}
		m.Tick = uint64(tick)
		if m.Time, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("bad ts %q: %w", ts, err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
