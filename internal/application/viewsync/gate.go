// Package viewsync serializes mutations per dashboard view. Each view's
// sync cycle is validate, write, refetch; allowing two cycles to
// interleave on one view could render a refetch from before the other
// cycle's write. The gate admits one mutation per view at a time and
// rejects the rest immediately instead of queueing them.
package viewsync

import (
	"errors"
	"sync"
)

// ErrSyncInFlight is returned when a view already has a mutation running.
var ErrSyncInFlight = errors.New("another change to this view is still being saved")

// Gate tracks which views have a mutation in flight.
type Gate struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewGate creates an empty gate.
func NewGate() *Gate {
	return &Gate{inFlight: make(map[string]bool)}
}

// Acquire claims the view for one mutation cycle. The returned release
// function must be called when the cycle finishes, write success or not.
// PRE: view is non-empty
// POST: on success the view is claimed until release is called
func (g *Gate) Acquire(view string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight[view] {
		return nil, ErrSyncInFlight
	}
	g.inFlight[view] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, view)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether a view currently has a mutation in flight.
// INVARIANT: does not change gate state
func (g *Gate) Busy(view string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[view]
}
