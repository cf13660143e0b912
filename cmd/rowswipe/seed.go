package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/rowswipe/cmd"
	"github.com/cristianoliveira/rowswipe/internal/colors"
	"github.com/spf13/cobra"
)

type seedClient interface {
	SeedItems(ctx context.Context) (int, error)
}

// NewSeedCmd creates the seed command with explicit dependencies.
func NewSeedCmd(client seedClient) *cobra.Command {
	if client == nil {
		panic("NewSeedCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty inbox with demo items",
		Long: `Fill an empty inbox with demo conversations and records.

An inbox that already has items is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := client.SeedItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if n == 0 {
				colors.Info("inbox is not empty, nothing seeded")
				return nil
			}
			colors.Success(fmt.Sprintf("seeded %d items", n))
			return nil
		},
	}
}

var seedCmd = NewSeedCmd(client)

func init() {
	cmd.RootCmd.AddCommand(seedCmd)
}
