// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"errors"
)

// authenticate runs once per established connection, before
// [Session.Connect] returns: the panel greets with either an immediate
// "WELCOME" or a "LOGIN" prompt, discriminated byte by byte via
// [OptionMatch] so the session never has to guess which banner is coming
// until it actually diverges.
func authenticate(ctx context.Context, s *Session) error {
	banner, err := StringOptionsRequest(ctx, s, "", []string{"WELCOME", "LOGIN"}, false)
	if err != nil {
		return err
	}

	switch banner {
	case "WELCOME":
		return nil
	case "LOGIN":
		return loginExchange(ctx, s)
	default:
		return &InvalidResponseError{Received: banner, Expected: "WELCOME or LOGIN"}
	}
}

func loginExchange(ctx context.Context, s *Session) error {
	if !s.hasCredentials {
		return MissingCredentialsError{}
	}

	if err := s.WriteLine(s.username + "\r\n"); err != nil {
		return err
	}

	// consume the password prompt without validating its text; only the
	// final WELCOME confirms the exchange succeeded.
	if _, err := s.ReadLine(ctx, "\r\n"); err != nil {
		return translateAuthError(err)
	}

	if _, err := StringOptionsRequest(ctx, s, s.password+"\r\n", []string{"WELCOME"}, false); err != nil {
		return translateAuthError(err)
	}
	return nil
}

func translateAuthError(err error) error {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return InvalidCredentialsError{}
	}
	return err
}
