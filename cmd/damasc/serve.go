// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/laszlokorte/damasc/internal/logging"
	"github.com/laszlokorte/damasc/internal/metrics"
)

// serveConfig holds configuration for the serve subcommand.
type serveConfig struct {
	metricsAddr string
	logFormat   string
}

func (cfg *serveConfig) Validate() error {
	if cfg.metricsAddr == "" {
		return fmt.Errorf("metrics-addr is required")
	}
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	return nil
}

// NewServeCmd creates the `damasc serve` subcommand: a Prometheus
// metrics endpoint only, per SPEC_FULL.md's Metrics section — evaluation
// never happens over the network.
func NewServeCmd() *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose a Prometheus /metrics endpoint for damasc bag/query instrumentation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "127.0.0.1:9108", "metrics HTTP listen address")
	cmd.Flags().StringVar(&cfg.logFormat, "log-format", "json", "log format (json or text)")

	return cmd
}

func runServe(ctx context.Context, cfg *serveConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetDefault("damasc", version, cfg.logFormat)

	reg := prometheus.NewRegistry()
	if err := metrics.New().Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.metricsAddr, Handler: mux}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down metrics server")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	}
}
