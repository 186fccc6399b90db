// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import "strings"

// Notification is a decoded unsolicited panel event line: a leading
// non-digit type prefix (A, D, ZO, LOGIN, ...) and an optional trailing
// all-digit number (the area, zone, or output index the event concerns).
// A line with no trailing digits, like "LOGIN", has HasNumber false and
// Number zero.
type Notification struct {
	Type      string
	Number    int
	HasNumber bool
	Raw       string
}

// ParseNotification returns a [Transformer] that decodes a single
// notification line by splitting off the longest trailing run of ASCII
// digits as the number, and everything before it as the type.
var ParseNotification = TransformerFunc[string, Notification](func(line string) FlowResult[Notification] {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Reject[Notification]()
	}

	cut := len(trimmed)
	for cut > 0 && isASCIIDigit(trimmed[cut-1]) {
		cut--
	}

	if cut == len(trimmed) {
		return Go(Notification{Type: trimmed, Raw: line})
	}
	if cut == 0 {
		return Reject[Notification]()
	}

	number := 0
	for i := cut; i < len(trimmed); i++ {
		number = number*10 + int(trimmed[i]-'0')
	}
	return Go(Notification{Type: trimmed[:cut], Number: number, HasNumber: true, Raw: line})
})

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
