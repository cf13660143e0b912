package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/rowswipe/cmd"
	"github.com/cristianoliveira/rowswipe/internal/colors"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/spf13/cobra"
)

const maxTitleLength = 200

type addClient interface {
	AddItem(ctx context.Context, item inbox.Item) (inbox.Item, error)
}

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(client addClient) *cobra.Command {
	if client == nil {
		panic("NewAddCmd: client dependency cannot be nil")
	}

	var kindFlag string
	var previewFlag string
	var unreadFlag int

	addCmd := &cobra.Command{
		Use:   "add [OPTIONS] <title>",
		Short: "Add an item to the inbox",
		Long: `rowswipe add - Add an item to the inbox

USAGE:
    rowswipe add [OPTIONS] <title>

OPTIONS:
    --kind <kind>       Item kind: conversation, record (default: conversation)
    --preview <text>    Preview line shown under the title
    --unread <n>        Unread message count, conversations only
    -h, --help          Show this help`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("add requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if err := validateTitle(title); err != nil {
				return err
			}
			kind := inbox.Kind(strings.ToLower(strings.TrimSpace(kindFlag)))
			if !kind.Valid() {
				return fmt.Errorf("add: invalid kind %q (expected conversation or record)", kindFlag)
			}
			if kind == inbox.KindRecord && unreadFlag != 0 {
				return fmt.Errorf("add: --unread only applies to conversations")
			}

			item, err := client.AddItem(cmd.Context(), inbox.Item{
				Kind:        kind,
				Title:       title,
				Preview:     strings.TrimSpace(previewFlag),
				UnreadCount: unreadFlag,
			})
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			colors.Success(fmt.Sprintf("added %s %d", item.Kind, item.ID))
			return nil
		},
	}

	addCmd.Flags().StringVar(&kindFlag, "kind", string(inbox.KindConversation), "Item kind: conversation, record")
	addCmd.Flags().StringVar(&previewFlag, "preview", "", "Preview line shown under the title")
	addCmd.Flags().IntVar(&unreadFlag, "unread", 0, "Unread message count, conversations only")

	return addCmd
}

var addCmd = NewAddCmd(client)

func init() {
	cmd.RootCmd.AddCommand(addCmd)
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("add: title cannot be empty")
	}
	if len([]rune(title)) > maxTitleLength {
		return fmt.Errorf("add: title too long (max %d characters)", maxTitleLength)
	}
	return nil
}
