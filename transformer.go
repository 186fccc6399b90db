// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"regexp"
	"strconv"
	"strings"
)

// WaitAnyCompleteLines returns a [Transformer] that yields every complete
// line currently in the buffer (split on delimiter d), excluding the
// trailing partial fragment after the last delimiter. It waits until at
// least one delimiter has been seen.
func WaitAnyCompleteLines(d string) Transformer[string, []string] {
	return TransformerFunc[string, []string](func(buffer string) FlowResult[[]string] {
		idx := strings.LastIndex(buffer, d)
		if idx < 0 {
			return Wait[[]string]()
		}
		complete := buffer[:idx]
		if complete == "" {
			return Go([]string{})
		}
		return Go(strings.Split(complete, d))
	})
}

// WaitNLines returns a [Transformer] that yields exactly n complete lines
// (split on delimiter d) once exactly n are present, and waits otherwise.
// It never produces a result once more than n complete lines have
// accumulated; callers relying on silence to bound a multi-line response
// use [SlidingTimeoutConsumer] instead.
func WaitNLines(n int, d string) Transformer[string, []string] {
	return TransformerFunc[string, []string](func(buffer string) FlowResult[[]string] {
		idx := strings.LastIndex(buffer, d)
		if idx < 0 {
			return Wait[[]string]()
		}
		complete := buffer[:idx]
		var lines []string
		if complete != "" {
			lines = strings.Split(complete, d)
		}
		if len(lines) != n {
			return Wait[[]string]()
		}
		return Go(lines)
	})
}

// WaitLine returns a [Transformer] that yields the single complete line
// once the delimiter d has terminated it.
func WaitLine(d string) Transformer[string, string] {
	return Compose[string, []string, string](
		WaitNLines(1, d),
		TransformerFunc[[]string, string](func(lines []string) FlowResult[string] {
			return Go(lines[0])
		}),
	)
}

// Join returns a [Transformer] that joins a slice of strings with sep.
func Join(sep string) Transformer[[]string, string] {
	return TransformerFunc[[]string, string](func(parts []string) FlowResult[string] {
		return Go(strings.Join(parts, sep))
	})
}

// Split returns a [Transformer] that splits a string on sep.
func Split(sep string) Transformer[string, []string] {
	return TransformerFunc[string, []string](func(s string) FlowResult[[]string] {
		return Go(strings.Split(s, sep))
	})
}

// Strip returns a [Transformer] that trims leading/trailing whitespace
// from a string, or the given cutset if chars is non-empty.
func Strip(chars string) Transformer[string, string] {
	return TransformerFunc[string, string](func(s string) FlowResult[string] {
		if chars == "" {
			return Go(strings.TrimSpace(s))
		}
		return Go(strings.Trim(s, chars))
	})
}

// ParseIntTransformer is a [Transformer] that parses a string as a base-10
// integer, yielding [FlowError] on malformed input.
var ParseIntTransformer = TransformerFunc[string, int](func(s string) FlowResult[int] {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Err[int](err)
	}
	return Go(n)
})

// KeywordCheck returns a [Transformer] that yields Go([Unit]{}) iff actual
// equals expected under the chosen case sensitivity, else Reject. There is
// no partial-match outcome here: an exact literal either matches or it
// does not.
func KeywordCheck(expected string, caseSensitive bool) Transformer[string, Unit] {
	return TransformerFunc[string, Unit](func(actual string) FlowResult[Unit] {
		if equalKeyword(actual, expected, caseSensitive) {
			return Go(Unit{})
		}
		return Reject[Unit]()
	})
}

func equalKeyword(actual, expected string, caseSensitive bool) bool {
	if caseSensitive {
		return actual == expected
	}
	return strings.EqualFold(actual, expected)
}

// OptionMatch returns a [Transformer] that matches input against a fixed
// set of options:
//
//   - input exactly equals an option -> Go(option)
//   - input is a strict prefix of some option (the option could still
//     become a match as more bytes arrive) -> Wait
//   - otherwise -> Reject
//
// This is the rule that distinguishes "keep feeding this consumer" from
// "clear the buffer and try a fresh match", used by the authentication
// exchange to discriminate WELCOME from LOGIN banners as they stream in
// byte by byte.
func OptionMatch(options []string, caseSensitive bool) Transformer[string, string] {
	return TransformerFunc[string, string](func(input string) FlowResult[string] {
		for _, opt := range options {
			if equalKeyword(input, opt, caseSensitive) {
				return Go(opt)
			}
		}
		for _, opt := range options {
			if hasPrefixFold(opt, input, caseSensitive) {
				return Wait[string]()
			}
		}
		return Reject[string]()
	})
}

func hasPrefixFold(s, prefix string, caseSensitive bool) bool {
	if len(prefix) > len(s) {
		return false
	}
	if caseSensitive {
		return strings.HasPrefix(s, prefix)
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// OKOrErr returns a [Transformer] mapping the literal "OK" to Go(true),
// "ERR" to Go(false), and anything else to Reject.
var OKOrErr = TransformerFunc[string, bool](func(s string) FlowResult[bool] {
	switch s {
	case "OK":
		return Go(true)
	case "ERR":
		return Go(false)
	default:
		return Reject[bool]()
	}
})

// CommandResponse returns a [Transformer] that decodes a single
// "<OK|ERR> <KEYWORD> [<DATA>]" response line for the named command:
// part 0 is delegated to [OKOrErr]; on OK, part 1 must equal keyword
// case-insensitively and the result is Go(data) (data is "" when no
// third part is present), or Reject if the keyword does not match; on
// ERR, part 1 is parsed as an integer error code and the result is
// [FlowError] wrapping the [CommandError] taxonomy.
func CommandResponse(command, keyword string) Transformer[string, string] {
	return TransformerFunc[string, string](func(line string) FlowResult[string] {
		parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
		if len(parts) < 2 {
			return Reject[string]()
		}
		status := OKOrErr.Call(parts[0])
		switch status.Outcome {
		case FlowGo:
			// fallthrough below
		case FlowReject:
			return Reject[string]()
		default:
			return Err[string](status.Err)
		}
		if !status.Value {
			code, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return Err[string](&CommandError{Command: command, Response: line})
			}
			return Err[string](newCommandError(code, command, line))
		}
		if !equalKeyword(parts[1], keyword, false) {
			return Reject[string]()
		}
		if len(parts) < 3 {
			return Go("")
		}
		return Go(parts[2])
	})
}

var panelVersionPattern = regexp.MustCompile(
	`^(.+?) F/W Ver\. (\d+)\.(\d+)\.(\d+) \((.+)\)$`)

// ParsePanelVersion returns a [Transformer] that decodes
// "<model> F/W Ver. <M>.<m>.<p> (<serial>)" into a [PanelVersion], or
// [FlowError] wrapping a malformed-version error.
var ParsePanelVersion = TransformerFunc[string, PanelVersion](func(s string) FlowResult[PanelVersion] {
	m := panelVersionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Err[PanelVersion](&InvalidResponseError{Received: s, Expected: "<model> F/W Ver. <M>.<m>.<p> (<serial>)"})
	}
	major, err1 := strconv.Atoi(m[2])
	minor, err2 := strconv.Atoi(m[3])
	patch, err3 := strconv.Atoi(m[4])
	if err1 != nil || err2 != nil || err3 != nil {
		return Err[PanelVersion](&InvalidResponseError{Received: s, Expected: "numeric firmware version"})
	}
	return Go(PanelVersion{
		Model:    m[1],
		Firmware: [3]int{major, minor, patch},
		Serial:   m[5],
	})
})
