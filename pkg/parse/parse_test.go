package parse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoMatchIsRecoverable(t *testing.T) {
	e := NoMatch("abc", "identifier")
	assert.False(t, e.Fatal())
	assert.Equal(t, "abc", e.Rest())
}

func TestPromote(t *testing.T) {
	e := Promote(NoMatch("abc", "node"))
	assert.True(t, e.Fatal())

	// Already-fatal errors pass through unchanged.
	f := Fail("xyz", "value")
	assert.Same(t, f, Promote(f))
	assert.True(t, f.Fatal())

	assert.Nil(t, Promote(nil))
}

func TestPushKeepsFatality(t *testing.T) {
	e := Fail("rest", "t_stop").Push("  .TRAN rest", "tran_command")
	assert.True(t, e.Fatal())
	require.Len(t, e.Trail, 2)
	assert.Equal(t, "t_stop", e.Trail[0].Label)
	assert.Equal(t, "tran_command", e.Trail[1].Label)
}

func TestIsFatalThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("parsing netlist: %w", Fail("x", "value"))
	assert.True(t, IsFatal(wrapped))

	wrapped = fmt.Errorf("parsing netlist: %w", NoMatch("x", "value"))
	assert.False(t, IsFatal(wrapped))
}

func TestLine(t *testing.T) {
	full := "R1 a b 1k\nC1 b 0 1u\nbad line\n"
	rest := full[len("R1 a b 1k\nC1 b 0 1u\n"):]
	assert.Equal(t, 3, Line(full, rest))
	assert.Equal(t, 1, Line(full, full))
	assert.Equal(t, 4, Line(full, ""))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "THIS_IS_INVALID", Preview("  THIS_IS_INVALID  \nnext"))
	assert.Equal(t, "tail", Preview("tail"))
}

func TestRender(t *testing.T) {
	full := "V1 1 0 DC x\n"
	e := Fail(full[len("V1 1 0 DC "):], "voltage").Push(full, "source")
	out := Render(full, e)
	assert.Contains(t, out, "in voltage at line 1")
	assert.Contains(t, out, "in source at line 1")
}
