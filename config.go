// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"net"
	"time"
)

// Config holds common configuration for session and transport operations.
//
// Pass this to constructor functions to pre-wire dependencies. All fields
// have sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is used by [*ConnectFunc].
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// ConnectionTimeout bounds a single call to establishConnection
	// (dial + authenticate).
	//
	// Set by [NewConfig] to 10 seconds.
	ConnectionTimeout time.Duration

	// AuthenticationTimeout bounds the login exchange once the transport
	// is connected.
	//
	// Set by [NewConfig] to 5 seconds.
	AuthenticationTimeout time.Duration

	// ReconnectDelay is the wait between failed reconnect attempts.
	//
	// Set by [NewConfig] to 1 second.
	ReconnectDelay time.Duration

	// MaxRetries bounds the number of reconnect attempts the reconnect
	// worker makes before giving up permanently.
	//
	// Set by [NewConfig] to 10.
	MaxRetries int

	// StatusSlidingTimeout is the quiet period [SlidingTimeoutConsumer]
	// waits for after the last accumulated line before finalizing a
	// Status response.
	//
	// Set by [NewConfig] to 100 milliseconds.
	StatusSlidingTimeout time.Duration

	// NotificationDelimiter terminates unsolicited panel event lines
	// consumed by [Session.Subscribe].
	//
	// Set by [NewConfig] to "\n".
	NotificationDelimiter string
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:                &net.Dialer{},
		ErrClassifier:         DefaultErrClassifier,
		TimeNow:               time.Now,
		ConnectionTimeout:     10 * time.Second,
		AuthenticationTimeout: 5 * time.Second,
		ReconnectDelay:        1 * time.Second,
		MaxRetries:            10,
		StatusSlidingTimeout:  100 * time.Millisecond,
		NotificationDelimiter: "\n",
	}
}
