// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"sync"
)

// Consumer is what the session's read loop feeds raw inbound bytes to. A
// consumer owns its own accumulation buffer and [Transformer]; Feed
// reports whether the consumer has reached a terminal state and should be
// deregistered. Consumers are fed only from the session's single read
// loop (registration happens from callers' goroutines under the registry
// lock, see registry.go), so none of the three adapters below need to
// guard against concurrent Feed calls, only against a concurrent
// Wait/Next racing a Feed.
type Consumer interface {
	Feed(chunk string) bool
}

// Future is a one-shot, many-reader result cell: the first resolve wins,
// every Wait (before or after resolution) observes the same value.
type Future[T any] struct {
	ch   chan FlowResult[T]
	once sync.Once
}

// NewFuture returns an unresolved [Future].
func NewFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan FlowResult[T], 1)}
}

func (f *Future[T]) resolve(r FlowResult[T]) {
	f.once.Do(func() {
		f.ch <- r
	})
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (FlowResult[T], error) {
	select {
	case r := <-f.ch:
		f.ch <- r // keep it available for any later Wait call
		return r, nil
	case <-ctx.Done():
		return FlowResult[T]{}, ctx.Err()
	}
}
