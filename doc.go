// SPDX-License-Identifier: GPL-3.0-or-later

// Package arrowhead implements a client for an Arrowhead-style intrusion
// alarm control panel: a line-oriented, text-based command/notification
// protocol spoken over a byte-stream transport (normally TCP).
//
// # Core Abstraction
//
// Parsing an inbound byte stream into panel responses and notifications is
// built from one primitive:
//
//	type Transformer[In, Out any] interface {
//		Call(buffer In) FlowResult[Out]
//	}
//
// A [FlowResult] is a tagged variant with four cases: Go, Wait, Reject, and
// Error. A transformer inspects the bytes accumulated so far and either
// produces a value (Go), asks for more input (Wait), declares the buffer
// unrecoverable and asks to be reset (Reject), or fails outright (Error).
// [Compose] chains two transformers so a Go result from the first feeds the
// second, while Wait/Reject/Error short-circuit the chain unchanged.
//
// # Transformer Library
//
// The package ships the reusable building blocks named by the protocol:
// line splitting ([WaitAnyCompleteLines], [WaitNLines], [WaitLine]), string
// shaping ([Join], [Split], [Strip], [ParseIntTransformer]), protocol discriminators
// ([KeywordCheck], [OptionMatch], [OKOrErr], [CommandResponse]), and the
// panel version grammar ([ParsePanelVersion]).
//
// # Consumer Adapters
//
// Three adapters turn a [Transformer] into a byte sink:
//
//   - [FutureConsumer]: resolves a one-shot result on the first Go or
//     Error outcome, used for request/response commands.
//   - [QueueConsumer]: pushes every Go/Error outcome onto an unbounded
//     queue, used for the panel's asynchronous notification stream.
//   - [SlidingTimeoutConsumer]: re-runs the transformer against the whole
//     buffer and finalizes once a quiet period follows the last Go, used
//     for responses (like Status) whose end is defined by silence rather
//     than by a sentinel line.
//
// # Session
//
// [Session] owns a [Transport], a single read loop, and a registry of
// active consumers. [SendRequest] registers a request's consumer for the
// duration of the call, writes the request's payload, and awaits the
// decoded result; it is a package-level generic function rather than a method
// because Go methods cannot declare type parameters of their own. A
// supervised reconnect worker re-establishes the connection and
// re-authenticates after a transport failure. [Session.Connect] runs
// [authenticate] once per established connection, which discriminates the
// panel's "WELCOME"/"LOGIN" banner via [OptionMatch] and, on "LOGIN",
// exchanges the configured username and password.
//
// # Commands and Notifications
//
// Boundary command constructors ([VersionRequest], [ModeRequest],
// [StatusRequest], [ArmAwayRequest], [ArmStayRequest]) each compose a
// decoder from the transformer library and drive it through [SendRequest].
// [ParseNotification] decodes the panel's unsolicited event lines into a
// [Notification]. [Session.Subscribe] registers a [QueueConsumer] against
// [ParseNotification] and returns a [Subscription]; [AreaStates],
// [ZoneStates], and [OutputStates] hold the caller's view of panel state
// built up from that stream.
//
// # Connection Pipeline
//
// The shipped [TCPTransport] is assembled from small composable stages,
// modeling total network operations (one success mode, one failure mode)
// via [Func] and [Compose2]/[Compose4], distinct from the four-outcome
// [Transformer] used for wire decoding: [NewEndpointFunc] supplies the
// panel's address, [NewConnectFunc] dials it, [NewObserveConnFunc] wraps
// the connection for structured I/O logging, [NewCancelWatchFunc] ties
// connection lifetime to the caller's context, and [NewTLSHandshakeFunc]
// optionally negotiates TLS. TLS negotiation happens only at this
// transport boundary, never inside the core transformer pipeline.
//
// # Observability
//
// All components that touch the wire accept an [SLogger] (any
// [log/slog]-compatible handler works). By default, logging is disabled.
// Errors are classified via [ErrClassifier] for structured log fields; the
// default classifier is backed by github.com/bassosimone/errclass. Use
// [NewSpanID] to correlate every log line from one connection attempt or
// one registered consumer.
//
// # Design Boundaries
//
// This package is the core parse/dispatch engine, the session, and the
// boundary command constructors. Out of scope: persistence, multi-panel
// routing, rate limiting, and the semantic mapping from decoded
// notifications to panel-state mutations. That belongs to a caller
// consuming the queue produced by [QueueConsumer].
package arrowhead
