// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import "context"

// FutureConsumer drives a [Transformer] to its first Go or Error outcome
// and then stops: a Reject clears the buffer and keeps listening for a
// fresh match, a Wait keeps accumulating, and a Go or Error resolves the
// consumer's [Future] exactly once. This is the adapter behind a single
// request/response exchange (see request.go) and the authentication
// handshake (see auth.go), where the caller wants exactly one answer.
type FutureConsumer[Out any] struct {
	transformer Transformer[string, Out]
	future      *Future[Out]
	buffer      string
}

// NewFutureConsumer wraps t in a one-shot [FutureConsumer].
func NewFutureConsumer[Out any](t Transformer[string, Out]) *FutureConsumer[Out] {
	return &FutureConsumer[Out]{
		transformer: t,
		future:      NewFuture[Out](),
	}
}

// Feed implements [Consumer]. It re-invokes the transformer after every
// character so a chunk carrying several logical units (e.g. a whole
// multi-line read in one net.Conn.Read) settles on the first unit rather
// than being judged against the chunk as a whole.
func (c *FutureConsumer[Out]) Feed(chunk string) bool {
	for i := 0; i < len(chunk); i++ {
		c.buffer += chunk[i : i+1]
		result := safeCall(c.transformer, c.buffer)
		switch result.Outcome {
		case FlowWait:
			continue
		case FlowReject:
			c.buffer = ""
			continue
		default: // FlowGo or FlowError
			c.future.resolve(result)
			return true
		}
	}
	return false
}

// Wait blocks until the consumer resolves or ctx is done.
func (c *FutureConsumer[Out]) Wait(ctx context.Context) (FlowResult[Out], error) {
	return c.future.Wait(ctx)
}

// Abort resolves the consumer with err, if it has not already resolved.
// Called by [ConsumerRegistry.AbortAll] when a session disconnects with
// requests still outstanding.
func (c *FutureConsumer[Out]) Abort(err error) {
	c.future.resolve(Err[Out](err))
}
