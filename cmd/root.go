package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/rowswipe/internal/colors"
	"github.com/cristianoliveira/rowswipe/internal/config"
	"github.com/cristianoliveira/rowswipe/internal/logging"
	"github.com/cristianoliveira/rowswipe/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "rowswipe",
	Short:         "An inbox whose rows you swipe to act on.",
	Long:          `An inbox whose rows you swipe to act on.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.ShutdownGlobal()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		if msg := err.Error(); msg != "" {
			colors.Error(msg)
		}
		logging.Error("command failed", "error", err)
		_ = logging.ShutdownGlobal()
	}
	return err
}

// setup loads the configuration and starts logging before any command runs.
func setup(cmd *cobra.Command) error {
	config.Load()

	colors.SetDebug(debugFlag || config.GetBool("debug", false))
	colors.SetQuiet(quietFlag || config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress informational output")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		printHelpText(cmd)
	})
}

// commandOrder is the order commands are listed in help.
var commandOrder = []string{
	"tui",
	"add",
	"list",
	"seed",
	"status",
	"help",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`rowswipe %s

An inbox whose rows you swipe to act on.

USAGE:
    rowswipe [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    -q, --quiet     Suppress informational output
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	_, _ = fmt.Fprint(cmd.OutOrStdout(), helpText)
}
