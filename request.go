// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

// Request bundles a single request/response exchange: the raw bytes to
// write to the transport and the [FutureConsumer] registered to catch
// the matching response. [SendRequest] registers the consumer before it
// writes Data; Request itself only tracks whether the exchange is still
// outstanding, and SendRequest marks it done once the write fails or the
// wait returns.
type Request[Out any] struct {
	Data     string
	Consumer *FutureConsumer[Out]
	pending  bool
}

// NewRequest builds a pending [Request] for data, backed by consumer.
func NewRequest[Out any](data string, consumer *FutureConsumer[Out]) *Request[Out] {
	return &Request[Out]{Data: data, Consumer: consumer, pending: true}
}

// Pending reports whether the exchange has not yet been marked done.
func (r *Request[Out]) Pending() bool {
	return r.pending
}

// MarkDone flips the request to no longer pending. Idempotent.
func (r *Request[Out]) MarkDone() {
	r.pending = false
}
