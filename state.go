// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

// ArmState is the arming state of a single area.
type ArmState int

const (
	ArmStateDisarmed ArmState = iota
	ArmStateArmedAway
	ArmStateArmedStay
)

// AreaState is the decoded state of one alarm area.
type AreaState struct {
	Arm ArmState
}

// ZoneState is the decoded state of one zone.
type ZoneState struct {
	Open     bool
	Bypassed bool
}

// OutputState is the decoded state of one programmable output.
type OutputState struct {
	Active bool
}

// AreaStates indexes [AreaState] by area number, as reported in a status
// dump or notification stream.
type AreaStates map[int]AreaState

// ZoneStates indexes [ZoneState] by zone number.
type ZoneStates map[int]ZoneState

// OutputStates indexes [OutputState] by output number.
type OutputStates map[int]OutputState

// Composite reports whether any area is armed, away or stay. A panel
// with multiple areas has no single "the" arm state; a caller that wants
// one boolean summary (for a simple UI indicator) gets the logical OR
// across every known area.
func (a AreaStates) Composite() bool {
	for _, s := range a {
		if s.Arm != ArmStateDisarmed {
			return true
		}
	}
	return false
}
