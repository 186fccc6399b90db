// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// VersionRequest sends "VERSION" and decodes the single-line
// "OK Version <model> F/W Ver. <M>.<m>.<p> (<serial>)" response into a
// [PanelVersion].
func VersionRequest(ctx context.Context, s *Session) (PanelVersion, error) {
	dataDecoder := Compose[string, string, PanelVersion](
		CommandResponse("VERSION", "Version"),
		ParsePanelVersion,
	)
	decoder := Compose[string, string, PanelVersion](WaitLine("\r\n"), dataDecoder)
	return SendRequest(ctx, s, "VERSION\r\n", decoder)
}

// ModeRequest sends "MODE <m>" and expects a two-line response: "OK
// Mode" followed by the echoed mode number. A mismatched echo is a
// protocol error, not merely an unexpected response, because it means
// the panel applied (or reports) a different mode than requested.
func ModeRequest(ctx context.Context, s *Session, mode int) (Unit, error) {
	decoder := Compose[string, []string, Unit](
		WaitNLines(2, "\r\n"),
		TransformerFunc[[]string, Unit](func(lines []string) FlowResult[Unit] {
			status := CommandResponse("MODE", "Mode").Call(lines[0])
			switch status.Outcome {
			case FlowError:
				return Err[Unit](status.Err)
			case FlowReject:
				return Reject[Unit]()
			}

			echoed, err := strconv.Atoi(strings.TrimSpace(lines[1]))
			if err != nil || echoed != mode {
				return Err[Unit](&InvalidResponseError{Received: lines[1], Expected: strconv.Itoa(mode)})
			}
			return Go(Unit{})
		}),
	)
	return SendRequest(ctx, s, fmt.Sprintf("MODE %d\r\n", mode), decoder)
}

// StatusRequest sends "Status" and collects every line the panel writes
// back into a single batch, finalized once [Config.StatusSlidingTimeout]
// of silence has elapsed. The decoder joins every complete line seen so
// far with a space, strips the "OK STATUS" response envelope via
// [CommandResponse], and splits the remaining data back into tokens, so
// "OK Status A1\nZC3\nZC5\n" decodes to ["A1","ZC3","ZC5"].
func StatusRequest(ctx context.Context, s *Session) ([]string, error) {
	decoder := Compose[string, string, []string](
		Compose[string, []string, string](
			WaitAnyCompleteLines("\n"),
			Join(" "),
		),
		Compose[string, string, []string](
			CommandResponse("STATUS", "STATUS"),
			Split(" "),
		),
	)
	consumer := NewSlidingTimeoutConsumer[[]string](decoder, s.cfg.StatusSlidingTimeout)
	_, unregister := s.registry.Register(consumer)
	defer unregister()

	if err := s.WriteLine("Status\n"); err != nil {
		return nil, err
	}
	return consumer.Wait(ctx)
}

// ArmOptions carries the optional area, user, and PIN parameters that
// accompany an arm command. A zero AreaID or UserID means "unspecified";
// HasPIN distinguishes an explicit PIN of 0 from no PIN at all.
type ArmOptions struct {
	AreaID int
	UserID int
	PIN    int
	HasPIN bool
}

func validateArmOptions(opts ArmOptions) error {
	if opts.AreaID < 0 {
		return &InvalidResponseError{Received: strconv.Itoa(opts.AreaID), Expected: "positive area id"}
	}
	if opts.UserID < 0 {
		return &InvalidResponseError{Received: strconv.Itoa(opts.UserID), Expected: "positive user id"}
	}
	if opts.HasPIN && opts.PIN < 0 {
		return &InvalidResponseError{Received: strconv.Itoa(opts.PIN), Expected: "non-negative pin"}
	}
	return nil
}

// ArmAwayRequest sends "ARMAWAY", optionally parameterized by area, user,
// and PIN.
func ArmAwayRequest(ctx context.Context, s *Session, opts ArmOptions) (Unit, error) {
	return armRequest(ctx, s, "ARMAWAY", opts)
}

// ArmStayRequest sends "ARMSTAY", optionally parameterized by area, user,
// and PIN.
func ArmStayRequest(ctx context.Context, s *Session, opts ArmOptions) (Unit, error) {
	return armRequest(ctx, s, "ARMSTAY", opts)
}

func armRequest(ctx context.Context, s *Session, command string, opts ArmOptions) (Unit, error) {
	if err := validateArmOptions(opts); err != nil {
		return Unit{}, err
	}

	var b strings.Builder
	b.WriteString(command)
	if opts.AreaID > 0 {
		fmt.Fprintf(&b, " %d", opts.AreaID)
	}
	if opts.UserID > 0 {
		fmt.Fprintf(&b, " %d", opts.UserID)
	}
	if opts.HasPIN {
		fmt.Fprintf(&b, " %d", opts.PIN)
	}
	b.WriteString("\r\n")

	decoder := Compose[string, string, Unit](
		WaitLine("\r\n"),
		TransformerFunc[string, Unit](func(line string) FlowResult[Unit] {
			status := CommandResponse(command, command).Call(line)
			switch status.Outcome {
			case FlowGo:
				return Go(Unit{})
			case FlowError:
				return Err[Unit](status.Err)
			default:
				return Reject[Unit]()
			}
		}),
	)
	return SendRequest(ctx, s, b.String(), decoder)
}

// StringOptionsRequest optionally writes message, then waits for the
// panel's response to match one of options (case sensitivity per
// caseSensitive), returning whichever option matched. message may be
// empty to just wait for the next matching line without writing
// anything first, the shape the authentication exchange needs to
// discriminate an unprompted WELCOME/LOGIN banner.
func StringOptionsRequest(ctx context.Context, s *Session, message string, options []string, caseSensitive bool) (string, error) {
	consumer := NewFutureConsumer[string](OptionMatch(options, caseSensitive))
	_, unregister := s.registry.Register(consumer)
	defer unregister()

	if message != "" {
		if err := s.WriteLine(message); err != nil {
			return "", err
		}
	}

	result, err := consumer.Wait(ctx)
	if err != nil {
		return "", err
	}
	if result.IsError() {
		return "", result.Err
	}
	return result.Value, nil
}
