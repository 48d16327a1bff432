package cubesim

// MoveSource records where a queued move came from.
type MoveSource string

const (
	SourceProgram  MoveSource = "program"  // Enqueue
	SourceGesture  MoveSource = "gesture"  // pointer drag
	SourceScramble MoveSource = "scramble" // EnqueueScramble
	SourceNotation MoveSource = "notation" // EnqueueNotation
	SourceDevice   MoveSource = "device"   // smart cube
	SourceRemote   MoveSource = "remote"   // websocket client
)

// QueuedMove is a pending move and its origin.
type QueuedMove struct {
	Move   SliceMove
	Source MoveSource
}

// shrinkCap is the backing capacity Clear keeps for reuse.
const shrinkCap = 64

// MoveQueue is an unbounded FIFO of pending slice moves.
type MoveQueue struct {
	items []QueuedMove
	head  int
}

// NewMoveQueue returns an empty queue.
func NewMoveQueue() *MoveQueue {
	return &MoveQueue{}
}

// Push appends moves to the back of the queue.
func (q *MoveQueue) Push(source MoveSource, moves ...SliceMove) {
	for _, m := range moves {
		q.items = append(q.items, QueuedMove{Move: m, Source: source})
	}
}

// Pop removes and returns the front of the queue.
func (q *MoveQueue) Pop() (QueuedMove, bool) {
	if q.head >= len(q.items) {
		return QueuedMove{}, false
	}
	m := q.items[q.head]
	q.items[q.head] = QueuedMove{}
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > len(q.items)/2:
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return m, true
}

// Peek returns the front of the queue without removing it.
func (q *MoveQueue) Peek() (QueuedMove, bool) {
	if q.head >= len(q.items) {
		return QueuedMove{}, false
	}
	return q.items[q.head], true
}

// Len returns the number of pending moves.
func (q *MoveQueue) Len() int {
	return len(q.items) - q.head
}

// Clear discards every pending move.
func (q *MoveQueue) Clear() {
	q.head = 0
	if cap(q.items) > shrinkCap {
		q.items = nil
		return
	}
	clear(q.items)
	q.items = q.items[:0]
}

// Moves returns a copy of the pending moves in order.
func (q *MoveQueue) Moves() []SliceMove {
	out := make([]SliceMove, 0, q.Len())
	for _, it := range q.items[q.head:] {
		out = append(out, it.Move)
	}
	return out
}
