package colors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Debug(msg string, args ...any) { c.lines = append(c.lines, "debug:"+msg) }
func (c *captureLogger) Info(msg string, args ...any)  { c.lines = append(c.lines, "info:"+msg) }
func (c *captureLogger) Warn(msg string, args ...any)  { c.lines = append(c.lines, "warn:"+msg) }
func (c *captureLogger) Error(msg string, args ...any) { c.lines = append(c.lines, "error:"+msg) }

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetLogger(nil)
		SetQuiet(false)
		SetDebug(false)
	})
	return &out, &errOut
}

func TestErrorAndWarningGoToStderr(t *testing.T) {
	out, errOut := capture(t)

	Error("something", "went wrong")
	Warning("careful")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "something went wrong")
	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), "careful")
}

func TestSuccessAndInfoGoToStdout(t *testing.T) {
	out, errOut := capture(t)

	Success("row deleted")
	Info("3 items")

	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), checkmark)
	assert.Contains(t, out.String(), "row deleted")
	assert.Contains(t, out.String(), "3 items")
}

func TestQuietSuppressesInfo(t *testing.T) {
	out, _ := capture(t)
	SetQuiet(true)

	Success("hidden")
	Info("hidden too")
	assert.Empty(t, out.String())
}

func TestDebugRequiresFlag(t *testing.T) {
	_, errOut := capture(t)

	Debug("not shown")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "shown")
}

func TestOutputMirroredToLogger(t *testing.T) {
	capture(t)
	l := &captureLogger{}
	SetLogger(l)

	Error("e")
	Warning("w")
	Success("s")
	Info("i")

	assert.Equal(t, []string{"error:e", "warn:w", "info:s", "info:i"}, l.lines)
}
