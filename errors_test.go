// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidResponseError(t *testing.T) {
	err := &InvalidResponseError{Received: "NOPE", Expected: "OK"}
	assert.Contains(t, err.Error(), "NOPE")
	assert.Contains(t, err.Error(), "OK")
}

func TestNewCommandErrorKnownCodes(t *testing.T) {
	cases := []struct {
		code     int
		sentinel error
	}{
		{1, ErrCommandNotUnderstood},
		{2, ErrInvalidParameter},
		{3, ErrCommandNotAllowed},
		{4, ErrRxBufferOverflow},
		{5, ErrTxBufferOverflow},
		{6, ErrXModemSessionFailed},
	}
	for _, tc := range cases {
		err := newCommandError(tc.code, "ARMAWAY", "ERR "+string(rune('0'+tc.code)))
		assert.True(t, errors.Is(err, tc.sentinel), "code %d should unwrap to its sentinel", tc.code)
		assert.Equal(t, tc.code, err.Code)
		assert.Equal(t, "ARMAWAY", err.Command)
	}
}

func TestNewCommandErrorUnknownCode(t *testing.T) {
	err := newCommandError(99, "ARMAWAY", "ERR 99")
	assert.Nil(t, err.Sentinel)
	assert.False(t, errors.Is(err, ErrCommandNotAllowed))
	assert.Contains(t, err.Error(), "99")
}

func TestCommandErrorIsDistinguishesSentinels(t *testing.T) {
	notAllowed := newCommandError(3, "ARMAWAY", "ERR 3")
	assert.True(t, errors.Is(notAllowed, ErrCommandNotAllowed))
	assert.False(t, errors.Is(notAllowed, ErrInvalidParameter))
}

func TestMissingCredentialsError(t *testing.T) {
	var err error = MissingCredentialsError{}
	assert.ErrorContains(t, err, "credentials")
}

func TestInvalidCredentialsError(t *testing.T) {
	var err error = InvalidCredentialsError{}
	assert.ErrorContains(t, err, "reset")
}

func TestConnectionErrorUnwraps(t *testing.T) {
	cause := errors.New("eof")
	err := NewConnectionError("read loop", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "read loop")
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{Op: "authenticate"}
	assert.Contains(t, err.Error(), "authenticate")
}
