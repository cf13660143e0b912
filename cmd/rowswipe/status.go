package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/rowswipe/cmd"
	"github.com/cristianoliveira/rowswipe/internal/formatter"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	presets := formatter.NewPresetRegistry()
	var presetLines []string
	for _, p := range presets.List() {
		presetLines = append(presetLines, fmt.Sprintf("    %-12s %s", p.Name, p.Description))
	}

	var formatFlag string
	var templateFlag string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print a one-line inbox summary",
		Long: fmt.Sprintf(`Print a one-line inbox summary for shell prompts and status bars.

USAGE:
    rowswipe status [--format <preset> | --template <template>]

PRESETS:
%s

VARIABLES:
    %s

Templates use {{variable}} placeholders, e.g. --template '{{unread-count}} new'.`,
			strings.Join(presetLines, "\n"), strings.Join(formatter.Variables(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			template := templateFlag
			if template == "" {
				p, err := presets.Get(formatFlag)
				if err != nil {
					return fmt.Errorf("status: %w", err)
				}
				template = p.Template
			}
			if err := formatter.Validate(template); err != nil {
				return fmt.Errorf("status: %w", err)
			}

			items, err := client.ListItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			out, err := formatter.Render(template, formatter.Summarize(items))
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	statusCmd.Flags().StringVar(&formatFlag, "format", "compact", "Preset name")
	statusCmd.Flags().StringVar(&templateFlag, "template", "", "Custom template, overrides --format")

	return statusCmd
}

var statusCmd = NewStatusCmd(client)

func init() {
	cmd.RootCmd.AddCommand(statusCmd)
}
