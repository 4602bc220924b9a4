// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/admission"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// EventHandler defines a function that is called when events occur in the
// processing of transfers and blocks.
type EventHandler func(ev events.Event)

// Worker interface represents the behavior required to be implemented by any
// package providing background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis     genesis.Genesis
	Admission   string // Defaults to the deferred strategy.
	MaxAttempts uint64 // Zero lets mining run until solved or cancelled.
	EvHandler   EventHandler
	Metrics     *metrics.Metrics
}

// State manages the chain, the accounts and the transfers waiting to be
// mined. Every change is serialized by a single mutex, so submitting a
// transfer can never interleave with mining a block. Queries read the
// database and mempool through their own locks and don't wait on mining.
type State struct {
	mu       sync.Mutex
	workerMu sync.Mutex

	genesis     genesis.Genesis
	issuer      database.AccountID
	maxAttempts uint64
	evHandler   EventHandler
	admit       admission.Func
	metrics     *metrics.Metrics

	db      *database.Database
	mempool *mempool.Mempool
	worker  Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(e events.Event) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(e)
		}
	}

	strategy := cfg.Admission
	if strategy == "" {
		strategy = admission.StrategyDeferred
	}

	admit, err := admission.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	// Create the database with the genesis block and seeded balances.
	db, err := database.New(cfg.Genesis)
	if err != nil {
		return nil, fmt.Errorf("constructing database: %w", err)
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.New()
	}
	m.ChainHeight.Set(float64(db.Height()))

	state := State{
		genesis:     cfg.Genesis.Copy(),
		issuer:      db.Issuer(),
		maxAttempts: cfg.MaxAttempts,
		evHandler:   ev,
		admit:       admit,
		metrics:     m,

		db:      db,
		mempool: mempool.New(),
	}

	state.trace("state: New: genesis: blk[%s]: difficulty[%d]: admission[%s]", db.LatestBlock().Hash, cfg.Genesis.Difficulty, strategy)

	// A worker is not set here. The call to worker.Run will register itself
	// when the ledger should mine in the background.

	return &state, nil
}

// RegisterWorker sets the worker that is signaled every time a transfer is
// accepted into the mempool.
func (s *State) RegisterWorker(w Worker) {
	s.workerMu.Lock()
	defer s.workerMu.Unlock()

	s.worker = w
}

// Shutdown stops the registered worker, if any, cancelling a mining
// operation in progress and waiting for the worker to finish. It never
// takes the lock held while mining.
func (s *State) Shutdown() {
	s.workerMu.Lock()
	w := s.worker
	s.worker = nil
	s.workerMu.Unlock()

	if w != nil {
		s.trace("state: Shutdown: stop worker")
		w.Shutdown()
	}
}

// signalWorker tells the registered worker, if any, there is work to mine.
func (s *State) signalWorker() {
	s.workerMu.Lock()
	defer s.workerMu.Unlock()

	if s.worker != nil {
		s.worker.SignalStartMining()
	}
}

// trace raises a trace event. It has the signature the database package
// expects for its own tracing.
func (s *State) trace(v string, args ...any) {
	s.evHandler(events.New(events.KindTrace, v, args...))
}

// notify raises a notification of the specified kind.
func (s *State) notify(kind events.Kind, v string, args ...any) {
	s.evHandler(events.New(kind, v, args...))
}
