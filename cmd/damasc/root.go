// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package main

import (
	"github.com/spf13/cobra"
)

// configFile is the global --config flag, consumed by shell.LoadConfig.
var configFile string

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// NewRootCmd builds the damasc CLI, a thin front-end shim over the core
// evaluation API per SPEC_FULL.md's CLI section — it offers no line
// editor or network surface of its own.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "damasc",
		Short: "Damasc expression, pattern and bag-query shell",
		Long: `Damasc is a small expression and pattern language for
manipulating immutable JSON-like values, with a shell surface for
pattern-driven queries over in-memory multisets ("bags").`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default ~/.damasc/config.yaml)")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}
