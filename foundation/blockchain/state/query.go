package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// QueryBalance returns the balance for the account, or zero if the account
// has never received funds.
func (s *State) QueryBalance(account string) int64 {
	return s.db.Balance(database.AccountID(account))
}

// QueryAccounts returns a copy of every account in the order the accounts
// were created.
func (s *State) QueryAccounts() []database.Account {
	return s.db.CopyAccounts()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlocks returns a copy of every block starting with genesis.
func (s *State) QueryBlocks() []database.Block {
	return s.db.Blocks()
}

// QueryHeight returns the number of blocks in the chain.
func (s *State) QueryHeight() int {
	return s.db.Height()
}

// =============================================================================

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis.Copy()
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveMempool returns a copy of the transfers waiting to be mined.
func (s *State) RetrieveMempool() []database.Transfer {
	return s.mempool.PickAll()
}
