// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"sync"
	"time"
)

// SlidingTimeoutConsumer drives a [Transformer] against a buffer that
// grows with every character and finalizes once delta has elapsed since
// the last Go outcome. This is the shape of a multi-line status dump,
// where the panel writes a header and a variable number of area/zone/
// output lines with no length prefix and nothing but silence to mark the
// end: the transformer itself decodes the whole accumulated response (see
// [StatusRequest]'s WaitAnyCompleteLines/Join/CommandResponse/Split
// chain), and a mid-stream Go only means "valid so far, keep the clock
// running" rather than a value to collect. The decoded result that
// actually resolves the consumer's future comes from one final call to
// the transformer at timeout, against whatever is left in the buffer.
//
// A Reject clears the buffer so a stray fragment cannot corrupt the next
// line, but it does not touch the timer: silence is measured from the
// last successful match, not from the last byte received.
type SlidingTimeoutConsumer[Out any] struct {
	mu          sync.Mutex
	transformer Transformer[string, Out]
	buffer      string
	delta       time.Duration
	timer       *time.Timer
	future      *Future[Out]
	finalized   bool
}

// NewSlidingTimeoutConsumer wraps t in a [SlidingTimeoutConsumer] whose
// clock starts running immediately: a status request that never produces
// a single matching byte still finalizes (with a timeout error) after
// delta.
func NewSlidingTimeoutConsumer[Out any](t Transformer[string, Out], delta time.Duration) *SlidingTimeoutConsumer[Out] {
	c := &SlidingTimeoutConsumer[Out]{
		transformer: t,
		delta:       delta,
		future:      NewFuture[Out](),
	}
	c.timer = time.AfterFunc(delta, c.finalize)
	return c
}

// Feed implements [Consumer]. It re-invokes the transformer after every
// character: a Go outcome resets the sliding timer without clearing or
// consuming the buffer, since the transformer needs the full accumulated
// text to produce its final decoded value at timeout.
func (c *SlidingTimeoutConsumer[Out]) Feed(chunk string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized {
		return true
	}
	for i := 0; i < len(chunk); i++ {
		c.buffer += chunk[i : i+1]
		result := safeCall(c.transformer, c.buffer)
		switch result.Outcome {
		case FlowWait:
			continue
		case FlowReject:
			c.buffer = ""
			continue
		case FlowGo:
			c.timer.Reset(c.delta)
		default: // FlowError
			c.timer.Stop()
			c.finalized = true
			c.future.resolve(Err[Out](result.Err))
			return true
		}
	}
	return false
}

// finalize runs once delta has elapsed since the last Go outcome,
// re-invoking the transformer against the current buffer one last time:
// a Go resolves with its value, an Error resolves with that error, and
// anything else (the batch never reached a decodable state) resolves
// with a [TimeoutError].
func (c *SlidingTimeoutConsumer[Out]) finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized {
		return
	}
	c.finalized = true
	result := safeCall(c.transformer, c.buffer)
	switch result.Outcome {
	case FlowGo:
		c.future.resolve(result)
	case FlowError:
		c.future.resolve(result)
	default:
		c.future.resolve(Err[Out](&TimeoutError{Op: "status response"}))
	}
}

// Abort finalizes the batch with err, if it has not already finalized.
// Called by [ConsumerRegistry.AbortAll] when a session disconnects
// mid-batch.
func (c *SlidingTimeoutConsumer[Out]) Abort(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized {
		return
	}
	c.timer.Stop()
	c.finalized = true
	c.future.resolve(Err[Out](err))
}

// Wait blocks until the batch finalizes (by silence, by error, or by
// abort) or ctx is done.
func (c *SlidingTimeoutConsumer[Out]) Wait(ctx context.Context) (Out, error) {
	var zero Out
	result, err := c.future.Wait(ctx)
	if err != nil {
		return zero, err
	}
	if result.IsError() {
		return zero, result.Err
	}
	return result.Value, nil
}
