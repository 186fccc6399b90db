// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import "fmt"

// mode4Firmware is the minimum firmware tuple that speaks the extended
// ("mode 4") status protocol.
var mode4Firmware = [3]int{10, 3, 50}

// PanelVersion is the decoded form of a "<model> F/W Ver. <M>.<m>.<p>
// (<serial>)" response line, produced by [ParsePanelVersion].
type PanelVersion struct {
	Model    string
	Firmware [3]int
	Serial   string
}

// String renders the version the way the panel reports it.
func (v PanelVersion) String() string {
	return fmt.Sprintf("%s F/W Ver. %d.%d.%d (%s)",
		v.Model, v.Firmware[0], v.Firmware[1], v.Firmware[2], v.Serial)
}

// Compare orders two versions by firmware tuple only; Model and Serial do
// not participate. It returns -1, 0, or 1 as v is less than, equal to, or
// greater than other.
func (v PanelVersion) Compare(other PanelVersion) int {
	for i := 0; i < 3; i++ {
		if v.Firmware[i] != other.Firmware[i] {
			if v.Firmware[i] < other.Firmware[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SupportsMode4 reports whether the firmware is new enough to speak the
// extended status protocol (firmware >= 10.3.50).
func (v PanelVersion) SupportsMode4() bool {
	return v.Compare(PanelVersion{Firmware: mode4Firmware}) >= 0
}
