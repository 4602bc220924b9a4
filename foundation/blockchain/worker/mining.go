package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.trace("worker: miningOperations: G started")
	defer w.trace("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.trace("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation takes all the transfers from the mempool and writes a
// new block to the chain.
func (w *Worker) runMiningOperation() {
	w.trace("worker: runMiningOperation: MINING: started")
	defer w.trace("worker: runMiningOperation: MINING: completed")

	// Make sure there are transfers in the mempool.
	length := w.state.QueryMempoolLength()
	if length == 0 {
		w.trace("worker: runMiningOperation: MINING: no transactions to mine: Txs[%d]", length)
		return
	}

	// Drain the cancel mining channel before starting.
	select {
	case <-w.cancelMining:
		w.trace("worker: runMiningOperation: MINING: drained cancel channel")
	default:
	}

	// Create a context so mining can be cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Can't return from this function until these G's are complete.
	var wg sync.WaitGroup
	wg.Add(2)

	// This G exists to cancel the mining operation.
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		select {
		case <-w.cancelMining:
			w.trace("worker: runMiningOperation: MINING: CANCEL: requested")
		case <-w.shut:
			w.trace("worker: runMiningOperation: MINING: CANCEL: shutdown")
		case <-ctx.Done():
		}
	}()

	// This G is performing the mining.
	var mined bool
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		t := time.Now()
		block, err := w.state.MineNewBlock(ctx)
		duration := time.Since(t)

		w.trace("worker: runMiningOperation: MINING: mining duration[%v]", duration)

		if err != nil {
			switch {
			case errors.Is(err, state.ErrNoTransactions):
				w.trace("worker: runMiningOperation: MINING: WARNING: no transactions in mempool")
			case ctx.Err() != nil:
				w.trace("worker: runMiningOperation: MINING: CANCEL: complete")
			default:
				w.trace("worker: runMiningOperation: MINING: ERROR: %s", err)
			}
			return
		}

		mined = true
		w.trace("worker: runMiningOperation: MINING: blk[%s]: Txs[%d]", block.Hash, len(block.Trans))
	}()

	// Wait for both G's to terminate.
	wg.Wait()

	// Transfers submitted while mining are waiting for the next block. A
	// cancelled operation is not restarted.
	if mined {
		if length := w.state.QueryMempoolLength(); length > 0 {
			w.trace("worker: runMiningOperation: MINING: signal new mining operation: Txs[%d]", length)
			w.SignalStartMining()
		}
	}
}
