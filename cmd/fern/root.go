package main

import (
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	pretty   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "fern",
		Short:         "Train and apply mutate, ns and median imputation steps",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// serve configures its own logger from the environment
			if cmd.Name() == "serve" {
				return nil
			}
			logger, err := logging.NewZapLogger(opts.logLevel, opts.pretty)
			if err != nil {
				return err
			}
			logging.SetLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "console log output")

	cmd.AddCommand(
		newPrepCmd(),
		newBakeCmd(),
		newTidyCmd(),
		newServeCmd(),
	)

	return cmd
}
