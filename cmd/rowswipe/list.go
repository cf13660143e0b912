package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/rowswipe/cmd"
	"github.com/cristianoliveira/rowswipe/internal/format"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/search"
	"github.com/spf13/cobra"
)

type listClient interface {
	ListItems(ctx context.Context) ([]inbox.Item, error)
}

const listCommandLong = `List inbox items, newest first.

USAGE:
    rowswipe list [OPTIONS]

OPTIONS:
    --kind <kind>        Only show items of kind: conversation, record
    --unread             Only show conversations with unread messages
    --search <query>     Only show items matching query
    --match <mode>       Search mode: token (default), substring, regex
    --format=<format>    Output format: simple (default), table, compact, json
    -h, --help           Show this help`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var kindFlag string
	var unreadFlag bool
	var formatFlag string
	var searchFlag string
	var matchFlag string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List inbox items",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !format.Valid(formatFlag) {
				return fmt.Errorf("list: invalid format %q", formatFlag)
			}
			kind := inbox.Kind(strings.ToLower(kindFlag))
			if kind != "" && !kind.Valid() {
				return fmt.Errorf("list: invalid kind %q (expected conversation or record)", kindFlag)
			}

			provider, err := search.New(matchFlag)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			if re, ok := provider.(*search.RegexProvider); ok && searchFlag != "" {
				if _, err := re.Compile(searchFlag); err != nil {
					return fmt.Errorf("list: %w", err)
				}
			}

			items, err := client.ListItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			items = search.Filter(provider, filterItems(items, kind, unreadFlag), searchFlag)

			f := format.NewFormatter(format.FormatterType(formatFlag))
			if len(items) == 0 && formatFlag != string(format.FormatterTypeJSON) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No items")
				return nil
			}
			return f.FormatItems(items, cmd.OutOrStdout())
		},
	}

	listCmd.Flags().StringVar(&kindFlag, "kind", "", "Only show items of kind: conversation, record")
	listCmd.Flags().BoolVar(&unreadFlag, "unread", false, "Only show conversations with unread messages")
	listCmd.Flags().StringVar(&searchFlag, "search", "", "Only show items matching query")
	listCmd.Flags().StringVar(&matchFlag, "match", "token", "Search mode: token, substring, regex")
	listCmd.Flags().StringVar(&formatFlag, "format", string(format.FormatterTypeSimple), "Output format: simple, table, compact, json")

	return listCmd
}

func filterItems(items []inbox.Item, kind inbox.Kind, unreadOnly bool) []inbox.Item {
	out := items[:0:0]
	for _, item := range items {
		if kind != "" && item.Kind != kind {
			continue
		}
		if unreadOnly && item.UnreadCount == 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

var listCmd = NewListCmd(client)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
