// Package main is the entry point for the damasc CLI.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("damasc failed", "error", err)
		os.Exit(1)
	}
}
