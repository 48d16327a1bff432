package cubesim

import (
	"fmt"
	"strings"
	"time"
)

// PlayMode selects how a play session is scored.
type PlayMode int

const (
	PlayPractice PlayMode = iota
	PlayTimekeeping
)

func (m PlayMode) String() string {
	switch m {
	case PlayPractice:
		return "practice"
	case PlayTimekeeping:
		return "timekeeping"
	default:
		return fmt.Sprintf("PlayMode(%d)", int(m))
	}
}

// ParsePlayMode parses "practice" or "timekeeping".
func ParsePlayMode(s string) (PlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "practice":
		return PlayPractice, nil
	case "timekeeping":
		return PlayTimekeeping, nil
	}
	return PlayPractice, fmt.Errorf("unknown play mode %q", s)
}

// Session follows a puzzle and keeps the play mode, timer and move count.
type Session struct {
	mode    PlayMode
	started time.Time
	moves   int
	last    SliceMove
	now     func() time.Time
}

// NewSession creates a session in the given mode. The timer starts now.
func NewSession(mode PlayMode) *Session {
	s := &Session{mode: mode, now: time.Now}
	s.started = s.now()
	return s
}

// Attach subscribes the session to p's completion and reset events.
func (s *Session) Attach(p *Puzzle) {
	p.OnSliceComplete(func(m SliceMove, _ MoveSource) {
		s.moves++
		s.last = m
	})
	p.OnReset(s.Restart)
}

// Mode returns the current play mode.
func (s *Session) Mode() PlayMode {
	return s.mode
}

// SetMode switches the play mode. Entering timekeeping restarts the timer.
func (s *Session) SetMode(m PlayMode) {
	if m == PlayTimekeeping && s.mode != PlayTimekeeping {
		s.started = s.now()
	}
	s.mode = m
}

// ToggleMode flips between practice and timekeeping.
func (s *Session) ToggleMode() PlayMode {
	if s.mode == PlayTimekeeping {
		s.SetMode(PlayPractice)
	} else {
		s.SetMode(PlayTimekeeping)
	}
	return s.mode
}

// Restart zeroes the move count and restarts the timer.
func (s *Session) Restart() {
	s.started = s.now()
	s.moves = 0
	s.last = SliceMove{}
}

// Elapsed returns the time since the timer started. It is zero in practice
// mode.
func (s *Session) Elapsed() time.Duration {
	if s.mode != PlayTimekeeping {
		return 0
	}
	return s.now().Sub(s.started)
}

// Moves returns the number of slices completed since the last restart.
func (s *Session) Moves() int {
	return s.moves
}

// LastMove returns the most recently completed move.
func (s *Session) LastMove() (SliceMove, bool) {
	return s.last, s.moves > 0
}
