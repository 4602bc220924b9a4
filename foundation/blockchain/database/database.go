// Package database handles all the lower level support for maintaining the
// blockchain in memory and maintaining an in memory database of account
// information.
package database

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// Database manages the chain of blocks and the accounts who have transacted
// on the blockchain. Balances reflect only the transfers that have been
// mined into the chain.
type Database struct {
	mu sync.RWMutex

	genesis  genesis.Genesis
	issuer   AccountID
	chain    []Block
	accounts map[AccountID]Account
	order    []AccountID
}

// New constructs a new database with the genesis block as the first block
// of the chain and applies the genesis balances.
func New(gen genesis.Genesis) (*Database, error) {
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	issuer, err := ToAccountID(gen.Issuer)
	if err != nil {
		return nil, fmt.Errorf("issuer: %w", err)
	}

	placeholder, err := ToAccountID(gen.Placeholder)
	if err != nil {
		return nil, fmt.Errorf("placeholder: %w", err)
	}

	db := Database{
		genesis:  gen,
		issuer:   issuer,
		chain:    []Block{GenesisBlock(issuer, placeholder)},
		accounts: make(map[AccountID]Account),
	}

	if err := db.seed(); err != nil {
		return nil, err
	}

	return &db, nil
}

// Issuer returns the account that is exempt from funds checks.
func (db *Database) Issuer() AccountID {
	return db.issuer
}

// Commit appends the block to the chain and applies its transfers to the
// accounts in block order. Readers see either both changes or neither.
func (db *Database) Commit(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := block.ValidateLink(db.chain[len(db.chain)-1]); err != nil {
		return err
	}

	db.chain = append(db.chain, block.Copy())

	for _, tx := range block.Trans {
		db.applyTransfer(tx)
	}

	return nil
}

// LatestBlock returns the latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.chain[len(db.chain)-1].Copy()
}

// Blocks returns a copy of every block in the chain starting with the
// genesis block.
func (db *Database) Blocks() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.chain))
	for i, block := range db.chain {
		blocks[i] = block.Copy()
	}
	return blocks
}

// Height returns the number of blocks in the chain.
func (db *Database) Height() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.chain)
}

// Verify checks the integrity of every block in the chain.
func (db *Database) Verify() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return VerifyChain(db.chain)
}

// Exists reports whether the account has been seeded or has received funds.
func (db *Database) Exists(accountID AccountID) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	_, exists := db.accounts[accountID]
	return exists
}

// Balance returns the balance for the account or zero if the account
// does not exist.
func (db *Database) Balance(accountID AccountID) int64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.accounts[accountID].Balance
}

// CopyAccounts makes a copy of the current accounts in the order each
// account was created.
func (db *Database) CopyAccounts() []Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make([]Account, 0, len(db.order))
	for _, accountID := range db.order {
		accounts = append(accounts, db.accounts[accountID])
	}
	return accounts
}

// ApplyTransfer performs the business logic for applying a transfer to the
// accounts. Funds are not re-validated here, a non-issuer sender can end up
// with a negative balance if the admission policy allowed it. Admission also
// keeps every balance within the int64 range.
func (db *Database) ApplyTransfer(tx Transfer) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.applyTransfer(tx)
}

// =============================================================================

// applyTransfer moves the amount between the accounts. The caller must hold
// the write lock.
func (db *Database) applyTransfer(tx Transfer) {
	amount := int64(tx.Amount)

	if tx.Sender != db.issuer {
		from := db.account(tx.Sender)
		from.Balance -= amount
		db.accounts[tx.Sender] = from
	}

	to := db.account(tx.Receiver)
	to.Balance += amount
	db.accounts[tx.Receiver] = to
}

// seed applies the genesis balances. The issuer is created first and the
// remaining accounts in name order.
func (db *Database) seed() error {
	names := make([]string, 0, len(db.genesis.Balances))
	for name := range db.genesis.Balances {
		if name != db.genesis.Issuer {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if _, exists := db.genesis.Balances[db.genesis.Issuer]; exists {
		names = append([]string{db.genesis.Issuer}, names...)
	}

	for _, name := range names {
		accountID, err := ToAccountID(name)
		if err != nil {
			return fmt.Errorf("genesis balance: %w", err)
		}

		account := db.account(accountID)
		account.Balance = db.genesis.Balances[name]
		db.accounts[accountID] = account
	}

	return nil
}

// account returns the account, creating it with a zero balance if this is
// the first time it's been seen. The caller must hold the write lock.
func (db *Database) account(accountID AccountID) Account {
	account, exists := db.accounts[accountID]
	if !exists {
		account = Account{AccountID: accountID}
		db.accounts[accountID] = account
		db.order = append(db.order, accountID)
	}
	return account
}
