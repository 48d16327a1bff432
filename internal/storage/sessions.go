package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("storage: session not found")

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Session is one recorded play session.
type Session struct {
	SessionID  string
	StartedAt  time.Time
	EndedAt    *time.Time
	PlayMode   string
	DeviceName *string
	Notes      *string
	MoveCount  int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a session and returns its ID.
func (r *SessionRepository) Create(playMode, deviceName, notes string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, play_mode, device_name, notes)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), playMode, nullString(deviceName), nullString(notes))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	res, err := r.db.Exec(`UPDATE sessions SET ended_at = ? WHERE session_id = ?`,
		time.Now().UTC().Format(timeLayout), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

const sessionColumns = `
	s.session_id, s.started_at, s.ended_at, s.play_mode, s.device_name, s.notes,
	(SELECT COUNT(*) FROM moves m WHERE m.session_id = s.session_id)
`

// Get returns one session.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions s WHERE s.session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s, err
}

// Latest returns the most recently started session.
func (r *SessionRepository) Latest() (*Session, error) {
	sessions, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrSessionNotFound
	}
	return sessions[0], nil
}

// List returns up to limit sessions, newest first.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	rows, err := r.db.Query(`SELECT `+sessionColumns+` FROM sessions s ORDER BY s.started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		s          Session
		startedAt  string
		endedAt    sql.NullString
		deviceName sql.NullString
		notes      sql.NullString
	)
	if err := row.Scan(&s.SessionID, &startedAt, &endedAt, &s.PlayMode, &deviceName, &notes, &s.MoveCount); err != nil {
		return nil, err
	}

	var err error
	if s.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("bad started_at %q: %w", startedAt, err)
	}
	if endedAt.Valid {
		t, err := time.Parse(timeLayout, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad ended_at %q: %w", endedAt.String, err)
		}
		s.EndedAt = &t
	}
	if deviceName.Valid {
		s.DeviceName = &deviceName.String
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
