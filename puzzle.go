package cubesim

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// TickReport describes what happened during one tick.
type TickReport struct {
	Tick      uint64      `json:"tick"`
	Selected  *SliceMove  `json:"selected,omitempty"`
	Deltas    []PoseDelta `json:"deltas,omitempty"`
	Completed *SliceMove  `json:"completed,omitempty"`
	QueueLen  int         `json:"queue_len"`
}

// Puzzle is the slice-rotation engine for one 3x3x3 puzzle. A host loop
// calls Tick once per frame; moves enter through Enqueue, the drag methods
// and EnqueueScramble.
//
// A Puzzle is not safe for concurrent use. Producers on other goroutines
// should hand moves to the goroutine that calls Tick, typically over a
// channel.
type Puzzle struct {
	cfg       *config
	log       *slog.Logger
	registry  *Registry
	queue     *MoveQueue
	animator  *Animator
	gestures  *GestureRecognizer
	scrambler *Scrambler

	tick uint64

	onComplete []func(SliceMove, MoveSource)
	onReset    []func()
}

// New creates a puzzle with all 27 pieces at their home positions.
func New(opts ...Option) (*Puzzle, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	animator, err := NewAnimator(cfg.rotateSpeed)
	if err != nil {
		return nil, err
	}

	return &Puzzle{
		cfg:       cfg,
		log:       cfg.logger,
		registry:  NewRegistry(cfg.pieceSize),
		queue:     NewMoveQueue(),
		animator:  animator,
		gestures:  NewGestureRecognizer(cfg.dragThreshold, cfg.pieceSize),
		scrambler: NewScrambler(cfg.scrambleLength, cfg.rng, cfg.fullRotations),
	}, nil
}

// Tick runs one simulation step: admit the next move if idle, advance the
// turning slice by dt seconds, then snap it if it has finished.
//
// A negative or non-finite dt returns a *TickError wrapping ErrNegativeDelta
// and changes nothing.
func (p *Puzzle) Tick(dt float32) (TickReport, error) {
	if !validDelta(dt) {
		return TickReport{}, &TickError{Tick: p.tick, Dt: dt, Wrapped: ErrNegativeDelta}
	}
	p.tick++
	report := TickReport{Tick: p.tick}

	if f, ok := SelectSlice(p.queue, p.registry); ok {
		m := f.Move
		report.Selected = &m
		p.log.Debug("slice selected",
			"tick", p.tick,
			"axis", m.Axis.String(),
			"layer", m.Layer,
			"rotation", m.Rotation.String(),
			"source", string(f.Source),
			"members", len(f.Members))
		if len(f.Members) == 0 {
			p.log.Warn("slice selection matched no pieces", "move", m.String())
		}
	}

	deltas, err := p.animator.Advance(p.registry, dt)
	if err != nil {
		return report, &TickError{Tick: p.tick, Dt: dt, Wrapped: err}
	}
	report.Deltas = deltas

	if f, ok := p.animator.Cleanup(p.registry); ok {
		m := f.Move
		report.Completed = &m
		p.log.Debug("slice completed", "tick", p.tick, "move", m.String())
		for _, cb := range p.onComplete {
			cb(m, f.Source)
		}
	}

	report.QueueLen = p.queue.Len()
	return report, nil
}

// Settle ticks with a fixed dt until the queue is empty and no slice is
// turning. It returns the number of ticks run, or ErrNotSettled after
// maxTicks.
func (p *Puzzle) Settle(dt float32, maxTicks int) (int, error) {
	for n := 0; n < maxTicks; n++ {
		if p.Idle() {
			return n, nil
		}
		if _, err := p.Tick(dt); err != nil {
			return n, err
		}
	}
	if p.Idle() {
		return maxTicks, nil
	}
	return maxTicks, fmt.Errorf("%w after %d ticks", ErrNotSettled, maxTicks)
}

// Enqueue validates and appends moves to the queue. Either all moves are
// queued or none are.
func (p *Puzzle) Enqueue(moves ...SliceMove) error {
	return p.EnqueueFrom(SourceProgram, moves...)
}

// EnqueueFrom is Enqueue with an explicit source tag, reported to
// OnSliceComplete listeners.
func (p *Puzzle) EnqueueFrom(source MoveSource, moves ...SliceMove) error {
	for i, m := range moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("move %d: %w", i, err)
		}
	}
	p.queue.Push(source, moves...)
	return nil
}

// EnqueueScramble appends a fresh scramble and returns it.
func (p *Puzzle) EnqueueScramble() []SliceMove {
	moves := p.scrambler.Generate()
	p.queue.Push(SourceScramble, moves...)
	p.log.Debug("scramble queued", "moves", len(moves), "queue_len", p.queue.Len())
	return moves
}

// Reset discards queued moves, abandons any turning slice and returns every
// piece to its home position. OnReset listeners run afterwards.
func (p *Puzzle) Reset() {
	dropped := p.queue.Len()
	p.queue.Clear()
	p.registry.Reset()
	p.gestures.End()
	p.log.Debug("puzzle reset", "tick", p.tick, "dropped", dropped)
	for _, cb := range p.onReset {
		cb()
	}
}

// DragStart records the start of a drag on piece at the given hit point.
func (p *Puzzle) DragStart(piece PieceID, hit mgl32.Vec3) error {
	if _, ok := p.registry.Piece(piece); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, piece)
	}
	p.gestures.Start(piece, hit)
	return nil
}

// DragMove feeds the current hit point of an active drag. When the drag
// resolves to a move it is queued and returned.
func (p *Puzzle) DragMove(current mgl32.Vec3) (SliceMove, bool) {
	if p.cfg.gestureLock && !p.Idle() {
		return SliceMove{}, false
	}
	m, ok := p.gestures.Move(p.registry, current)
	if !ok {
		return SliceMove{}, false
	}
	p.queue.Push(SourceGesture, m)
	p.log.Debug("gesture resolved", "move", m.String())
	return m, true
}

// DragEnd clears any active drag.
func (p *Puzzle) DragEnd() {
	p.gestures.End()
}

// OnSliceComplete registers a listener called after each slice snaps.
func (p *Puzzle) OnSliceComplete(cb func(SliceMove, MoveSource)) {
	p.onComplete = append(p.onComplete, cb)
}

// OnReset registers a listener called after Reset.
func (p *Puzzle) OnReset(cb func()) {
	p.onReset = append(p.onReset, cb)
}

// QueueLen returns the number of pending moves.
func (p *Puzzle) QueueLen() int {
	return p.queue.Len()
}

// Queued returns the pending moves in order.
func (p *Puzzle) Queued() []SliceMove {
	return p.queue.Moves()
}

// Animating reports whether a slice is turning.
func (p *Puzzle) Animating() bool {
	return p.registry.flight != nil
}

// InFlight returns the move currently turning.
func (p *Puzzle) InFlight() (SliceMove, bool) {
	if f := p.registry.flight; f != nil {
		return f.Move, true
	}
	return SliceMove{}, false
}

// Idle reports whether no slice is turning and no moves are queued.
func (p *Puzzle) Idle() bool {
	return p.registry.flight == nil && p.queue.Len() == 0
}

// Ticks returns the number of successful ticks.
func (p *Puzzle) Ticks() uint64 {
	return p.tick
}

// Pieces returns the piece records.
func (p *Puzzle) Pieces() []Piece {
	return p.registry.Pieces()
}

// Piece returns the record for id.
func (p *Puzzle) Piece(id PieceID) (Piece, bool) {
	return p.registry.Piece(id)
}

// Pose returns the current pose of id.
func (p *Puzzle) Pose(id PieceID) (Pose, bool) {
	return p.registry.Pose(id)
}

// Poses returns every pose, indexed by PieceID.
func (p *Puzzle) Poses() []Pose {
	return p.registry.Poses()
}

// PieceAt returns the piece at a lattice position.
func (p *Puzzle) PieceAt(pos mgl32.Vec3) (PieceID, bool) {
	return p.registry.At(pos)
}

// Remaining returns the angle the turning slice still has to cover, or 0
// when idle.
func (p *Puzzle) Remaining() float32 {
	f := p.registry.flight
	if f == nil || len(f.Members) == 0 {
		return 0
	}
	st, _ := p.registry.State(f.Members[0])
	return st.Slice.Remaining
}

// CheckLattice verifies the lattice invariant. It fails while a slice is
// turning.
func (p *Puzzle) CheckLattice() error {
	return p.registry.CheckLattice()
}

// RotateSpeed returns the turn rate in revolutions per second.
func (p *Puzzle) RotateSpeed() float32 {
	return p.animator.Speed()
}

// SetRotateSpeed changes the turn rate. It applies from the next tick, also
// to a slice already turning.
func (p *Puzzle) SetRotateSpeed(speed float32) error {
	if err := p.animator.SetSpeed(speed); err != nil {
		return err
	}
	p.log.Debug("rotate speed changed", "speed", speed)
	return nil
}

// Scrambler returns the puzzle's scramble generator.
func (p *Puzzle) Scrambler() *Scrambler {
	return p.scrambler
}
