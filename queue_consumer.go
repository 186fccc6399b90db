// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"sync"
)

// QueueConsumer drives a [Transformer] repeatedly: every Go result is
// pushed onto an unbounded FIFO and the buffer resets to match the next
// item, a Reject clears the buffer without emitting anything, a Wait
// keeps accumulating, and a single Error terminates the consumer
// permanently (subsequent Feed calls are no-ops). This is the adapter
// behind unsolicited notification delivery, where the panel can push any
// number of lines with nothing to correlate them to a specific request.
type QueueConsumer[Out any] struct {
	mu          sync.Mutex
	transformer Transformer[string, Out]
	buffer      string
	items       []FlowResult[Out]
	signal      chan struct{}
	done        bool
}

// NewQueueConsumer wraps t in an unbounded-FIFO [QueueConsumer].
func NewQueueConsumer[Out any](t Transformer[string, Out]) *QueueConsumer[Out] {
	return &QueueConsumer[Out]{
		transformer: t,
		signal:      make(chan struct{}, 1),
	}
}

// Feed implements [Consumer]. It re-invokes the transformer after every
// character so a chunk carrying several notification lines in one read
// yields one queued item per line instead of judging the chunk whole.
func (c *QueueConsumer[Out]) Feed(chunk string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
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
			c.buffer = ""
			c.push(result)
		default: // FlowError
			c.buffer = ""
			c.push(result)
			c.done = true
			return true
		}
	}
	return false
}

func (c *QueueConsumer[Out]) push(result FlowResult[Out]) {
	c.items = append(c.items, result)
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

// Abort terminates the consumer with a final err item, if it has not
// already terminated. Called by [ConsumerRegistry.AbortAll] when a
// session disconnects with this consumer still registered.
func (c *QueueConsumer[Out]) Abort(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.push(Err[Out](err))
}

// Next blocks until an item is available or ctx is done, returning
// (item, true) on success and (zero value, false) once the queue has
// drained after the consumer terminated, or ctx expired first.
func (c *QueueConsumer[Out]) Next(ctx context.Context) (FlowResult[Out], bool) {
	for {
		c.mu.Lock()
		if len(c.items) > 0 {
			item := c.items[0]
			c.items = c.items[1:]
			c.mu.Unlock()
			return item, true
		}
		done := c.done
		c.mu.Unlock()
		if done {
			return FlowResult[Out]{}, false
		}
		select {
		case <-c.signal:
		case <-ctx.Done():
			return FlowResult[Out]{}, false
		}
	}
}
