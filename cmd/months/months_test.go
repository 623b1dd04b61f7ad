package months

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	t.Cleanup(func() { Cmd.SetOut(nil) })
	require.NoError(t, monthsFunc(Cmd, args))
	return buf.String()
}

func TestMonthsFunc_Forward(t *testing.T) {
	out := run(t, "J", "F", "M", "A")
	assert.Contains(t, out, "confident: true (score 4/4)")
	assert.Contains(t, out, "direction: forward from January")
	assert.Contains(t, out, "labels:    January February March April")
}

func TestMonthsFunc_JoinedInitials(t *testing.T) {
	assert.Equal(t, run(t, "J", "F", "M", "A"), run(t, "jfma"))
}

func TestMonthsFunc_Unconfident(t *testing.T) {
	out := run(t, "X", "Y", "Z")
	assert.Contains(t, out, "confident: false")
	assert.NotContains(t, out, "direction:")
	assert.Contains(t, out, "labels:    M01 M02 M03")
}

func TestMonthsCommand_RequiresArgs(t *testing.T) {
	assert.Error(t, Cmd.Args(Cmd, nil))
}
