// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package metrics instruments the bag store and query engine with
// Prometheus counters and gauges, per SPEC_FULL.md's ambient stack. None
// of this is required for correct evaluation — spec.md section 5 promises
// no internal concurrency or background tasks, and these metrics are
// plain synchronous counter increments on the same goroutine as the call
// they describe.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the damasc collectors. Construct one with New and register
// it with a prometheus.Registerer of the caller's choosing (typically only
// done by cmd/damasc's `serve` subcommand).
type Metrics struct {
	BagInserts *prometheus.CounterVec
	BagDeletes *prometheus.CounterVec
	BagPops    *prometheus.CounterVec
	QueryRows  *prometheus.CounterVec
	QueryErrors *prometheus.CounterVec
	BagEntries *prometheus.GaugeVec
}

// New constructs the collector set, unregistered.
func New() *Metrics {
	return &Metrics{
		BagInserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "damasc_bag_inserts_total",
			Help: "Number of values successfully inserted into a bag.",
		}, []string{"bag"}),
		BagDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "damasc_bag_deletes_total",
			Help: "Number of values removed from a bag by .delete.",
		}, []string{"bag"}),
		BagPops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "damasc_bag_pop_total",
			Help: "Number of values removed from a bag by .pop.",
		}, []string{"bag"}),
		QueryRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "damasc_query_rows_total",
			Help: "Number of rows yielded by .query/.queryx.",
		}, []string{"bag"}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "damasc_query_errors_total",
			Help: "Number of queries that aborted with a QueryError.",
		}, []string{"bag"}),
		BagEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "damasc_bag_entries",
			Help: "Current cardinality of a bag, counting multiplicities.",
		}, []string{"bag"}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.BagInserts, m.BagDeletes, m.BagPops, m.QueryRows, m.QueryErrors, m.BagEntries,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
