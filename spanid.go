package arrowhead

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 representing a span.
//
// A span is a sequence of operations that can fail in a single, specific
// way: establishing a connection and authenticating, or one registered
// consumer's lifetime in the [Session] registry.
//
// We recommend using a span ID for uniquely identifying spans, and for
// minting registry keys (a span ID is also a fine opaque consumer id).
//
// The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
