// Package mempool maintains the queue of transfers waiting to be mined.
package mempool

import (
	"math"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the transfers that have been accepted but not yet
// mined, kept in the order they were submitted. Duplicate transfers are
// permitted.
type Mempool struct {
	pool []database.Transfer
	mu   sync.RWMutex
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transfers in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transfer to the end of the pool and returns the new count.
func (mp *Mempool) Add(tx database.Transfer) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// PickAll returns a copy of every transfer in submission order.
func (mp *Mempool) PickAll() []database.Transfer {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Transfer, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// PendingDebits returns the total amount the account is sending in the
// transfers still waiting to be mined. The total saturates at MaxUint64.
func (mp *Mempool) PendingDebits(accountID database.AccountID) uint64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total uint64
	for _, tx := range mp.pool {
		if tx.Sender != accountID {
			continue
		}

		if total > math.MaxUint64-tx.Amount {
			return math.MaxUint64
		}
		total += tx.Amount
	}

	return total
}

// PendingCredits returns the total amount the account is receiving in the
// transfers still waiting to be mined. The total saturates at MaxUint64.
func (mp *Mempool) PendingCredits(accountID database.AccountID) uint64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total uint64
	for _, tx := range mp.pool {
		if tx.Receiver != accountID {
			continue
		}

		if total > math.MaxUint64-tx.Amount {
			return math.MaxUint64
		}
		total += tx.Amount
	}

	return total
}

// Truncate clears all the transfers from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
