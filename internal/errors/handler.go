// Package errors routes user-facing errors and notices either to the
// terminal (CLI commands) or to the status line (TUI).
package errors

import (
	"fmt"
)

// ErrorHandler is the interface for error handling.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console writer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to the terminal.
type CLIHandler struct {
	colors ColorOutput
}

// NewCLIHandler returns a handler writing through out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{colors: out}
}

func (h *CLIHandler) Error(msg string)   { h.colors.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }

// Report sends err to h as an error prefixed with op. A nil err is ignored
// and Report returns false.
func Report(h ErrorHandler, op string, err error) bool {
	if err == nil {
		return false
	}
	h.Error(fmt.Sprintf("%s: %v", op, err))
	return true
}
