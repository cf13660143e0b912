package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/rowswipe/internal/colors"
	"github.com/spf13/cobra"
)

// runCmd executes c with args and returns its stdout, its stderr, and the
// console output written through colors.
func runCmd(t *testing.T, c *cobra.Command, args ...string) (stdout, console string, err error) {
	t.Helper()
	var out, errOut, colorsOut bytes.Buffer
	colors.SetOutput(&colorsOut, &colorsOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	c.SetContext(context.Background())
	err = c.Execute()
	return out.String(), colorsOut.String() + errOut.String(), err
}

var errBoom = errors.New("boom")
