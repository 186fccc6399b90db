// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitAnyCompleteLines(t *testing.T) {
	tr := WaitAnyCompleteLines("\r\n")

	assert.True(t, tr.Call("partial").IsWait())

	r := tr.Call("ONE\r\nTWO\r\nthree-so-far")
	assert.True(t, r.IsGo())
	assert.Equal(t, []string{"ONE", "TWO"}, r.Value)

	r = tr.Call("ONE\r\n")
	assert.True(t, r.IsGo())
	assert.Equal(t, []string{"ONE"}, r.Value)
}

func TestWaitNLines(t *testing.T) {
	tr := WaitNLines(2, "\n")

	assert.True(t, tr.Call("A\n").IsWait())

	r := tr.Call("A\nB\n")
	assert.True(t, r.IsGo())
	assert.Equal(t, []string{"A", "B"}, r.Value)

	assert.True(t, tr.Call("A\nB\nC\n").IsWait())
}

func TestWaitLine(t *testing.T) {
	tr := WaitLine("\n")

	assert.True(t, tr.Call("partial").IsWait())

	r := tr.Call("complete\n")
	assert.True(t, r.IsGo())
	assert.Equal(t, "complete", r.Value)
}

func TestJoinSplitStrip(t *testing.T) {
	join := Join(",")
	r := join.Call([]string{"a", "b", "c"})
	assert.True(t, r.IsGo())
	assert.Equal(t, "a,b,c", r.Value)

	split := Split(",")
	rs := split.Call("a,b,c")
	assert.True(t, rs.IsGo())
	assert.Equal(t, []string{"a", "b", "c"}, rs.Value)

	strip := Strip("")
	rstrip := strip.Call("  hello  ")
	assert.True(t, rstrip.IsGo())
	assert.Equal(t, "hello", rstrip.Value)

	stripChars := Strip("#")
	rc := stripChars.Call("##hello##")
	assert.True(t, rc.IsGo())
	assert.Equal(t, "hello", rc.Value)
}

func TestParseIntTransformer(t *testing.T) {
	r := ParseIntTransformer.Call("42")
	assert.True(t, r.IsGo())
	assert.Equal(t, 42, r.Value)

	bad := ParseIntTransformer.Call("not-a-number")
	assert.True(t, bad.IsError())
}

func TestKeywordCheck(t *testing.T) {
	tr := KeywordCheck("WELCOME", true)
	assert.True(t, tr.Call("WELCOME").IsGo())
	assert.True(t, tr.Call("welcome").IsReject())

	ci := KeywordCheck("WELCOME", false)
	assert.True(t, ci.Call("welcome").IsGo())
}

func TestOptionMatchProgressesByteByByte(t *testing.T) {
	tr := OptionMatch([]string{"WELCOME", "LOGIN"}, true)

	prefixes := []string{"W", "WE", "WEL", "WELC", "WELCO", "WELCOM"}
	for _, p := range prefixes {
		r := tr.Call(p)
		assert.True(t, r.IsWait(), "expected Wait for prefix %q", p)
	}

	final := tr.Call("WELCOME")
	assert.True(t, final.IsGo())
	assert.Equal(t, "WELCOME", final.Value)
}

func TestOptionMatchRejectsDeadEnd(t *testing.T) {
	tr := OptionMatch([]string{"WELCOME", "LOGIN"}, true)
	assert.True(t, tr.Call("X").IsReject())
	assert.True(t, tr.Call("WELP").IsReject())
}

func TestOptionMatchDiscriminatesOptions(t *testing.T) {
	tr := OptionMatch([]string{"WELCOME", "LOGIN"}, true)
	r := tr.Call("LOGIN")
	assert.True(t, r.IsGo())
	assert.Equal(t, "LOGIN", r.Value)
}

func TestOKOrErr(t *testing.T) {
	assert.True(t, OKOrErr.Call("OK").IsGo())
	assert.Equal(t, true, OKOrErr.Call("OK").Value)

	assert.True(t, OKOrErr.Call("ERR").IsGo())
	assert.Equal(t, false, OKOrErr.Call("ERR").Value)

	assert.True(t, OKOrErr.Call("GARBAGE").IsReject())
}

func TestCommandResponseSuccessWithData(t *testing.T) {
	tr := CommandResponse("ARMAWAY", "ARMAWAY")
	r := tr.Call("OK ARMAWAY 1")
	assert.True(t, r.IsGo())
	assert.Equal(t, "1", r.Value)
}

func TestCommandResponseSuccessNoData(t *testing.T) {
	tr := CommandResponse("MODE", "Mode")
	r := tr.Call("OK Mode")
	assert.True(t, r.IsGo())
	assert.Equal(t, "", r.Value)
}

func TestCommandResponseErrorCode(t *testing.T) {
	tr := CommandResponse("ARMAWAY", "ARMAWAY")
	r := tr.Call("ERR 3")
	assert.True(t, r.IsError())

	var cmdErr *CommandError
	assert.ErrorAs(t, r.Err, &cmdErr)
	assert.ErrorIs(t, r.Err, ErrCommandNotAllowed)
}

func TestCommandResponseKeywordMismatch(t *testing.T) {
	tr := CommandResponse("ARMAWAY", "ARMAWAY")
	r := tr.Call("OK SOMETHINGELSE 1")
	assert.True(t, r.IsReject())
}

func TestCommandResponseMalformedErrorCode(t *testing.T) {
	tr := CommandResponse("ARMAWAY", "ARMAWAY")
	r := tr.Call("ERR X")
	assert.True(t, r.IsError())
}

func TestParsePanelVersion(t *testing.T) {
	r := ParsePanelVersion.Call("ECi F/W Ver. 10.3.50 (123456)")
	assert.True(t, r.IsGo())
	assert.Equal(t, PanelVersion{Model: "ECi", Firmware: [3]int{10, 3, 50}, Serial: "123456"}, r.Value)
}

func TestParsePanelVersionMalformed(t *testing.T) {
	r := ParsePanelVersion.Call("not a version string")
	assert.True(t, r.IsError())

	var invErr *InvalidResponseError
	assert.ErrorAs(t, r.Err, &invErr)
}
