// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"log/slog"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/metrics"
)

// Shell holds the session state of a single damasc front-end: the bag
// store, the session environment accumulated by `let` statements, and the
// ambient collaborators (directory for dump/load, optional metrics,
// logger). It carries no goroutines and no locks, per spec.md section 5.
type Shell struct {
	store    *bag.Store
	env      *env.Env
	dir      string
	metrics  *metrics.Metrics
	logger   *slog.Logger
	registry *Registry
}

// Option configures a Shell during construction, the same functional-
// options shape the teacher uses for its command Dispatcher.
type Option func(*Shell)

// WithDir sets the directory .dump/.load resolve file names against.
// Defaults to the current directory.
func WithDir(dir string) Option {
	return func(s *Shell) { s.dir = dir }
}

// WithMetrics attaches a metrics collector set. Without one, bag/query
// commands simply skip instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Shell) { s.metrics = m }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithRegistry overrides the default dot-command registry, letting an
// embedder add or replace commands.
func WithRegistry(r *Registry) Option {
	return func(s *Shell) { s.registry = r }
}

// New constructs a Shell with a fresh Store (only the implicit "init" bag
// exists) and an empty session environment.
func New(opts ...Option) *Shell {
	s := &Shell{
		store:  bag.NewStore(),
		env:    env.Empty,
		dir:    ".",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = defaultRegistry()
	}
	return s
}

// Store returns the session's bag store.
func (s *Shell) Store() *bag.Store { return s.store }

// Env returns the session's accumulated environment.
func (s *Shell) Env() *env.Env { return s.env }
