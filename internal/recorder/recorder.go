// Package recorder journals completed slice moves of a puzzle to storage.
package recorder

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// State is the lifecycle state of a recorder.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var ErrNotRecording = errors.New("recorder: not recording")

// Recorder writes every completed move of an attached puzzle to a session.
// Write failures are logged and counted; they never stop the puzzle.
type Recorder struct {
	sessions     *storage.SessionRepository
	moves        *storage.MoveRepository
	orientations *storage.OrientationRepository
	log          *slog.Logger
	now          func() time.Time

	mu        sync.Mutex
	state     State
	sessionID string
	seq       int
	failures  int
	up, front string
}

// New creates a recorder backed by db.
func New(db *storage.DB, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{
		sessions:     storage.NewSessionRepository(db),
		moves:        storage.NewMoveRepository(db),
		orientations: storage.NewOrientationRepository(db),
		log:          logger,
		now:          time.Now,
	}
}

// Start opens a new session.
func (r *Recorder) Start(mode cubesim.PlayMode, deviceName string) (string, error) {
	id, err := r.sessions.Create(mode.String(), deviceName, "")
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateRecording
	r.sessionID = id
	r.seq = 0
	r.up, r.front = "", ""
	r.log.Info("session started", "session", id, "mode", mode.String())
	return id, nil
}

// Attach subscribes to p's completion and reset events.
func (r *Recorder) Attach(p *cubesim.Puzzle) {
	p.OnSliceComplete(func(m cubesim.SliceMove, src cubesim.MoveSource) {
		r.record(m, src, p.Ticks())
	})
	p.OnReset(r.recordReset)
}

func (r *Recorder) record(m cubesim.SliceMove, src cubesim.MoveSource, tick uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return
	}

	r.seq++
	err := r.moves.Append(storage.MoveRecord{
		SessionID: r.sessionID,
		Seq:       r.seq,
		Tick:      tick,
		Time:      r.now(),
		Axis:      m.Axis.String(),
		Layer:     int(m.Layer),
		Rotation:  m.Rotation.String(),
		Notation:  m.Notation(),
		Source:    string(src),
	})
	if err != nil {
		r.failures++
		r.log.Warn("failed to record move", "session", r.sessionID, "seq", r.seq, "err", err)
	}
}

func (r *Recorder) recordReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return
	}
	if err := r.moves.RecordReset(r.sessionID, r.seq); err != nil {
		r.failures++
		r.log.Warn("failed to record reset", "session", r.sessionID, "err", err)
	}
}

// RecordOrientation stores the device orientation when it differs from the
// last one stored. It is safe to call from the BLE goroutine.
func (r *Recorder) RecordOrientation(up, front string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording || (up == r.up && front == r.front) {
		return
	}
	r.up, r.front = up, front
	err := r.orientations.Append(storage.OrientationRecord{
		SessionID: r.sessionID,
		Time:      r.now(),
		AfterSeq:  r.seq,
		UpFace:    up,
		FrontFace: front,
	})
	if err != nil {
		r.failures++
		r.log.Warn("failed to record orientation", "session", r.sessionID, "err", err)
	}
}

// Stop ends the current session.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return ErrNotRecording
	}
	r.state = StateEnded
	r.log.Info("session ended", "session", r.sessionID, "moves", r.seq)
	return r.sessions.End(r.sessionID)
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the current or last session ID.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// Recorded returns the number of moves recorded in the current session.
func (r *Recorder) Recorded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Failures returns the number of failed writes.
func (r *Recorder) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}
