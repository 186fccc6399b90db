// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"sync"
)

// TwoSidedEvent is a level-triggered flag whose two edges are
// independently awaitable: a goroutine blocked in WaitSet and another
// blocked in WaitClear each unblock on their own edge, never on the
// other's. It is built from two mutually exclusive one-shot gates, one
// per edge, each replaced the moment its opposite fires. Session uses one
// of these for "connected", so a caller can wait for the next connect
// without racing a concurrent wait for the next disconnect.
type TwoSidedEvent struct {
	mu      sync.Mutex
	set     bool
	setCh   chan struct{}
	clearCh chan struct{}
}

// NewTwoSidedEvent returns an event in the cleared state.
func NewTwoSidedEvent() *TwoSidedEvent {
	clearCh := make(chan struct{})
	close(clearCh)
	return &TwoSidedEvent{
		setCh:   make(chan struct{}),
		clearCh: clearCh,
	}
}

// Set transitions the event to set, releasing every WaitSet call, if it
// is not already set. Idempotent.
func (e *TwoSidedEvent) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set {
		return
	}
	e.set = true
	close(e.setCh)
	e.clearCh = make(chan struct{})
}

// Clear transitions the event to cleared, releasing every WaitClear
// call, if it is not already cleared. Idempotent.
func (e *TwoSidedEvent) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		return
	}
	e.set = false
	close(e.clearCh)
	e.setCh = make(chan struct{})
}

// IsSet reports the current state.
func (e *TwoSidedEvent) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}

// WaitSet blocks until the event is set, returning immediately if it
// already is, or until ctx is done.
func (e *TwoSidedEvent) WaitSet(ctx context.Context) error {
	e.mu.Lock()
	ch, already := e.setCh, e.set
	e.mu.Unlock()
	if already {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitClear blocks until the event is cleared, returning immediately if
// it already is, or until ctx is done.
func (e *TwoSidedEvent) WaitClear(ctx context.Context) error {
	e.mu.Lock()
	ch, already := e.clearCh, !e.set
	e.mu.Unlock()
	if already {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
