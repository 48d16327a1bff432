package cubesim

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubesim package.
var (
	// Move construction errors
	ErrInvalidAxis     = errors.New("cubesim: invalid axis")
	ErrInvalidLayer    = errors.New("cubesim: layer must be -1, 0 or 1")
	ErrInvalidRotation = errors.New("cubesim: invalid rotation amount")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")

	// Simulation parameter errors
	ErrInvalidRotateSpeed    = errors.New("cubesim: rotate speed must be positive")
	ErrInvalidDragThreshold  = errors.New("cubesim: drag threshold must not be negative")
	ErrInvalidScrambleLength = errors.New("cubesim: scramble length must not be negative")
	ErrInvalidPieceSize      = errors.New("cubesim: piece size must be positive")
	ErrNegativeDelta         = errors.New("cubesim: tick delta must be a non-negative finite number")

	// State errors
	ErrUnknownPiece     = errors.New("cubesim: unknown piece")
	ErrLatticeViolation = errors.New("cubesim: piece off the lattice")
	ErrNotSettled       = errors.New("cubesim: puzzle did not settle")

	// Device errors
	ErrDeviceNotFound = errors.New("cubesim: device not found")
	ErrUnknownColor   = errors.New("cubesim: unknown face color")
)

// TickError reports a failed tick. The puzzle state is left exactly as it
// was before the call.
type TickError struct {
	Tick    uint64
	Dt      float32
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (dt=%g): %v", e.Tick, e.Dt, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
