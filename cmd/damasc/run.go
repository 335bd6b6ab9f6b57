// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/laszlokorte/damasc/internal/logging"
	"github.com/laszlokorte/damasc/internal/shell"
)

// runConfig holds configuration for the run subcommand.
type runConfig struct {
	logFormat string
	bagDir    string
}

// Validate checks that the configuration is usable.
func (cfg *runConfig) Validate() error {
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	return nil
}

// NewRunCmd creates the `damasc run` subcommand.
func NewRunCmd() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Evaluate damasc statements from a file or stdin, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.logFormat, "log-format", "text", "log format (json or text)")
	cmd.Flags().StringVar(&cfg.bagDir, "bag-dir", "", "directory .dump/.load resolve file names against")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, cfg *runConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetDefault("damasc", version, cfg.logFormat)

	conf, err := shell.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dir := cfg.bagDir
	if dir == "" {
		dir = conf.BagDir
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	sh := shell.New(shell.WithDir(dir))

	scanner := bufio.NewScanner(in)
	out := cmd.OutOrStdout()
	for scanner.Scan() {
		for _, o := range sh.Eval(scanner.Text()) {
			fmt.Fprintln(out, o.String())
			if o.Kind == shell.KindError {
				slog.Debug("statement error", "kind", o.ErrKind, "message", o.ErrMessage)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
