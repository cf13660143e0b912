package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/rowswipe/cmd"
	"github.com/cristianoliveira/rowswipe/internal/logging"
	"github.com/cristianoliveira/rowswipe/internal/tui"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	RunTUI(ctx context.Context, settings tui.Settings) error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	var noConfirm bool

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive inbox",
		Long: `Open the interactive inbox.

Drag a row left to reveal Leave and Delete, or keep pulling to delete it
at once. Drag an unread conversation right to mark it as read. The
keyboard works too: h/l swipe, x deletes, r marks read, ? shows all keys.

OPTIONS:
    --no-confirm    Do not ask before leaving or deleting
    -h, --help      Show this help`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := tui.SettingsFromConfig()
			if noConfirm {
				settings.ConfirmDelete = false
				settings.ConfirmLeave = false
			}
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			logging.Info("tui starting", "confirm_delete", settings.ConfirmDelete, "confirm_leave", settings.ConfirmLeave)
			return client.RunTUI(cmd.Context(), settings)
		},
	}

	tuiCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "Do not ask before leaving or deleting")

	return tuiCmd
}

var tuiCmd = NewTUICmd(client)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
