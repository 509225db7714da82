// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package cli holds the command line plumbing shared by the demo binaries.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunFunc runs a demo, writing its output to 'out'.
type RunFunc func(ctx context.Context, out io.Writer, log *zap.Logger) error

// NewCommand creates the root command of a demo binary. The command takes no
// arguments. Logs go to stderr, the demo output to the command's output.
func NewCommand(use, short string, run RunFunc) *cobra.Command {
	var (
		verbose bool
		logger  *zap.Logger
	)

	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = NewLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debug("Running demo", zap.String("demo", use))
			if err := run(cmd.Context(), cmd.OutOrStdout(), logger.Named(use)); err != nil {
				logger.Error("Demo failed", zap.String("demo", use), zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

// NewLogger builds the production logger, writing to stderr.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// Main executes 'cmd' with a context that is cancelled on SIGINT or SIGTERM
// and exits with a non-zero status on failure.
func Main(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
