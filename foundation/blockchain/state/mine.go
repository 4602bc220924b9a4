package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/events"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transfers in the mempool. It's a benign condition.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock packages every transfer in the mempool into a new block,
// solves the proof of work puzzle, applies the transfers to the accounts in
// submission order and appends the block to the chain. If mining is
// cancelled or runs out of attempts nothing is applied and the mempool is
// left as it was.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trace("state: MineNewBlock: MINING: check mempool count")

	// Are there any transfers in the pool.
	if s.mempool.Count() == 0 {
		s.notify(events.KindNoTransactions, "No transactions to mine.")
		return database.Block{}, ErrNoTransactions
	}

	s.trace("state: MineNewBlock: MINING: perform POW")

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block := database.NewBlock(s.db.LatestBlock().Hash, s.mempool.PickAll())

	opts := database.MineOptions{
		MaxAttempts: s.maxAttempts,
		EvHandler:   s.trace,
	}

	attempts, err := block.Mine(ctx, s.genesis.Difficulty, opts)
	s.metrics.MiningAttempts.Add(float64(attempts))
	if err != nil {
		s.metrics.MiningAborted.Inc()
		s.notify(events.KindMiningAborted, "Mining aborted after %d attempts: %s", attempts, err)
		return database.Block{}, err
	}

	s.notify(events.KindBlockMined, "Block mined: %s", block.Hash)

	s.trace("state: MineNewBlock: MINING: update local state")

	if err := s.updateLocalState(block); err != nil {
		return database.Block{}, err
	}

	return block.Copy(), nil
}

// =============================================================================

// updateLocalState appends the block to the chain, applies its transfers to
// the accounts and clears the mempool. The caller must hold the lock.
func (s *State) updateLocalState(block database.Block) error {
	for _, tx := range block.Trans {
		s.trace("state: updateLocalState: tx[%s] apply", tx)
	}

	if err := s.db.Commit(block); err != nil {
		return err
	}

	s.mempool.Truncate()

	s.metrics.BlocksMined.Inc()
	s.metrics.ChainHeight.Set(float64(s.db.Height()))

	return nil
}
