// Package cli wires the command line entry points.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

// NewRootCommand builds the sozluk command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sozluk",
		Short: "Tanpınar dictionary of archaic and literary Turkish words",
		Long: `sozluk serves a curated dictionary of archaic Turkish words over HTTP,
announces a word of the day and loads words from spreadsheets.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newServeCommand(),
		newImportCommand(),
		newSeedCommand(),
		newDailyCommand(),
	)
	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
