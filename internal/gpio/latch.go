package gpio

import (
	"sync"

	"github.com/sweeney/thermostat/internal/logic"
)

// Latch holds pending edge flags for the two buttons, the way an interrupt
// status register holds them until software clears them.
// It implements EdgeInputs and doubles as the fake for tests.
type Latch struct {
	mu      sync.Mutex
	pending map[logic.Button]bool
	edges   chan struct{}
	raised  int
}

var _ EdgeInputs = (*Latch)(nil)

// NewLatch returns a latch with no pending edges.
func NewLatch() *Latch {
	return &Latch{
		pending: make(map[logic.Button]bool, 2),
		edges:   make(chan struct{}, 1),
	}
}

// Raise latches an edge for b and posts a notification.
// Notifications coalesce: a full channel means one is already queued.
func (l *Latch) Raise(b logic.Button) {
	l.mu.Lock()
	l.pending[b] = true
	l.raised++
	l.mu.Unlock()

	select {
	case l.edges <- struct{}{}:
	default:
	}
}

// Pending reports whether an edge is latched for b.
func (l *Latch) Pending(b logic.Button) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending[b]
}

// Clear drops the pending flag for b.
func (l *Latch) Clear(b logic.Button) {
	l.mu.Lock()
	delete(l.pending, b)
	l.mu.Unlock()
}

// ClearAll drops every pending flag.
func (l *Latch) ClearAll() {
	l.mu.Lock()
	clear(l.pending)
	l.mu.Unlock()
}

// Edges delivers edge notifications.
func (l *Latch) Edges() <-chan struct{} {
	return l.edges
}

// Raised returns the total number of edges latched since creation.
func (l *Latch) Raised() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.raised
}

// Close is a no-op; the latch owns no hardware.
func (l *Latch) Close() error {
	return nil
}
