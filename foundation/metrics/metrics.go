// Package metrics maintains the prometheus metrics recorded while the
// ledger accepts transfers and mines blocks.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Reasons recorded against rejected transfers.
const (
	ReasonInvalid           = "invalid"
	ReasonUnknownAccount    = "unknown_account"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonOverflow          = "balance_overflow"
)

// Metrics holds the collectors for a single ledger on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	TransfersAccepted prometheus.Counter
	TransfersRejected *prometheus.CounterVec
	BlocksMined       prometheus.Counter
	MiningAttempts    prometheus.Counter
	MiningAborted     prometheus.Counter
	ChainHeight       prometheus.Gauge
}

// New constructs the collectors and registers them with a new registry.
func New() *Metrics {
	m := Metrics{
		Registry: prometheus.NewRegistry(),

		TransfersAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_accepted_total",
			Help:      "Number of transfers accepted into the mempool.",
		}),
		TransfersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_rejected_total",
			Help:      "Number of transfers refused at submission by reason.",
		}, []string{"reason"}),
		BlocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_mined_total",
			Help:      "Number of blocks mined and appended to the chain.",
		}),
		MiningAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mining_attempts_total",
			Help:      "Number of nonces tried while mining.",
		}),
		MiningAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mining_aborted_total",
			Help:      "Number of mining operations cancelled or out of attempts.",
		}),
		ChainHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_height",
			Help:      "Number of blocks in the chain including genesis.",
		}),
	}

	m.Registry.MustRegister(
		m.TransfersAccepted,
		m.TransfersRejected,
		m.BlocksMined,
		m.MiningAttempts,
		m.MiningAborted,
		m.ChainHeight,
	)

	return &m
}

// Handler returns an http handler that serves the collectors in the
// prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
