package cubesim

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures a Puzzle.
type Option func(*config)

type config struct {
	rotateSpeed    float32
	dragThreshold  float32
	scrambleLength int
	pieceSize      float32
	rng            *rand.Rand
	fullRotations  bool
	gestureLock    bool
	logger         *slog.Logger
}

func defaultConfig() *config {
	return &config{
		rotateSpeed:    DefaultRotateSpeed,
		dragThreshold:  DefaultDragThreshold,
		scrambleLength: DefaultScrambleLength,
		pieceSize:      DefaultPieceSize,
		logger:         slog.New(slog.DiscardHandler),
	}
}

func (c *config) validate() error {
	if !(c.rotateSpeed > 0) {
		return ErrInvalidRotateSpeed
	}
	if !(c.dragThreshold >= 0) {
		return ErrInvalidDragThreshold
	}
	if c.scrambleLength < 0 {
		return ErrInvalidScrambleLength
	}
	if !(c.pieceSize > 0) {
		return ErrInvalidPieceSize
	}
	return nil
}

// WithRotateSpeed sets the turn rate in revolutions per second (default 1).
func WithRotateSpeed(speed float32) Option {
	return func(c *config) {
		c.rotateSpeed = speed
	}
}

// WithDragThreshold sets how far the pointer must travel before a drag
// becomes a move.
func WithDragThreshold(d float32) Option {
	return func(c *config) {
		c.dragThreshold = d
	}
}

// WithScrambleLength sets the number of moves EnqueueScramble adds.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		c.scrambleLength = n
	}
}

// WithPieceSize sets the piece edge length used to locate outer faces during
// gesture recognition.
func WithPieceSize(size float32) Option {
	return func(c *config) {
		c.pieceSize = size
	}
}

// WithRand sets the random source for scrambles. Use a seeded source for
// reproducible scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithFullRotationSet lets scrambles draw from all six rotation amounts.
func WithFullRotationSet(enabled bool) Option {
	return func(c *config) {
		c.fullRotations = enabled
	}
}

// WithGestureLock ignores drags while a slice is turning or moves are
// pending. Disabled by default.
func WithGestureLock(enabled bool) Option {
	return func(c *config) {
		c.gestureLock = enabled
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
