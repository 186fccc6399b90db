// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

// Unit is a type not containing any value (analogous to an
// explicit `void` type in C and C++).
//
// Used as the argument type for niladic pipeline stages (e.g. the
// transport endpoint source) and as the result type of transformers and
// commands that decode to no meaningful value (e.g. MODE).
type Unit struct{}
