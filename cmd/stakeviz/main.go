// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// The stakeviz binary serves the stake / finality explorer over JSON-RPC and
// offers offline access to the same computations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type logFlags struct {
	level, format string
}

func (f *logFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.level, "log-level", "info", "log level (verbo, debug, trace, info, warn, error, fatal, off)")
	fs.StringVar(&f.format, "log-format", "plain", "log format (plain or json)")
}

func (f *logFlags) logger() (logging.Logger, error) {
	lvl, err := logging.ToLevel(f.level)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}

	cfg := zapcore.EncoderConfig{
		MessageKey:  "msg",
		TimeKey:     "time",
		LevelKey:    "level",
		NameKey:     "logger",
		EncodeTime:  zapcore.ISO8601TimeEncoder,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	var enc zapcore.Encoder
	switch f.format {
	case "plain":
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		enc = zapcore.NewJSONEncoder(cfg)
	default:
		return nil, fmt.Errorf("--log-format: unknown format %q", f.format)
	}
	return logging.NewLogger("stakeviz", logging.NewWrappedCore(lvl, os.Stderr, enc)), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stakeviz",
		Short:         "Explore how minimum stake drives validator count, finality time and message overhead",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newEvalCmd(),
		newSweepCmd(),
		newConstantsCmd(),
	)
	return root
}
