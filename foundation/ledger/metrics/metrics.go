// Package metrics exposes prometheus counters for ledger activity. The
// counters register with the default registry and are served from the debug
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksMinted counts blocks appended across all chains.
	BlocksMinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_blocks_minted_total",
		Help: "Total number of blocks minted across all account chains.",
	})

	// BlocksBurned counts blocks removed across all chains.
	BlocksBurned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_blocks_burned_total",
		Help: "Total number of blocks burned across all account chains.",
	})

	// Transfers counts completed transfers, accepted requests included.
	Transfers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_transfers_total",
		Help: "Total number of completed transfers.",
	})

	// RequestsResolved counts money requests by terminal status.
	RequestsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_requests_resolved_total",
		Help: "Total number of money requests resolved, by terminal status.",
	}, []string{"status"})
)
