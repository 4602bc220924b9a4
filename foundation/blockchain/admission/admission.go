// Package admission provides the different policies for accepting a transfer
// into the mempool.
package admission

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Set of reasons a transfer can be refused.
var (
	ErrUnknownAccount    = errors.New("sender does not have an account")
	ErrInsufficientFunds = errors.New("sender has insufficient funds")
	ErrBalanceOverflow   = errors.New("balance would overflow")
)

// List of different admission strategies.
const (
	StrategyDeferred  = "deferred"
	StrategyProjected = "projected"
)

// Map of different admission strategies with functions.
var strategies = map[string]Func{
	StrategyDeferred:  deferred,
	StrategyProjected: projected,
}

// Sender is what is known about the sending account at the time a transfer
// is submitted.
type Sender struct {
	Exists        bool   // The account has been seeded or has received funds.
	Balance       int64  // The balance recorded by mined blocks.
	PendingDebits uint64 // Amount already queued to leave the account.
}

// Bounds is what is known about an account a transfer moves funds in or out
// of. While a batch is applied the balance stays between Balance minus
// PendingDebits and Balance plus PendingCredits whatever the order.
type Bounds struct {
	Balance        int64
	PendingCredits uint64
	PendingDebits  uint64
}

// Func defines a function that decides if a non-issuer sender can submit a
// transfer of the specified amount. The issuer never goes through admission.
type Func func(sender Sender, amount uint64) error

// Retrieve returns the specified admission strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strings.ToLower(strategy)]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// CheckCredit verifies the receiving account can take the amount on top of
// its pending credits without going past the largest balance.
func CheckCredit(b Bounds, amount uint64) error {
	high := big.NewInt(b.Balance)
	high.Add(high, new(big.Int).SetUint64(b.PendingCredits))
	high.Add(high, new(big.Int).SetUint64(amount))

	if high.Cmp(big.NewInt(math.MaxInt64)) > 0 {
		return ErrBalanceOverflow
	}

	return nil
}

// CheckDebit verifies the sending account can give up the amount on top of
// its pending debits without going past the smallest balance.
func CheckDebit(b Bounds, amount uint64) error {
	low := big.NewInt(b.Balance)
	low.Sub(low, new(big.Int).SetUint64(b.PendingDebits))
	low.Sub(low, new(big.Int).SetUint64(amount))

	if low.Cmp(big.NewInt(math.MinInt64)) < 0 {
		return ErrBalanceOverflow
	}

	return nil
}

// =============================================================================

// deferred checks the amount against the recorded balance only. Transfers
// waiting in the mempool are not considered, so several accepted transfers
// from the same sender can overdraw the account once they are mined.
func deferred(sender Sender, amount uint64) error {
	if !sender.Exists {
		return ErrUnknownAccount
	}

	if !covers(sender.Balance, 0, amount) {
		return ErrInsufficientFunds
	}

	return nil
}

// projected checks the amount against the recorded balance minus what the
// sender already has waiting in the mempool. A sender can never be overdrawn
// by a batch of transfers admitted this way.
func projected(sender Sender, amount uint64) error {
	if !sender.Exists {
		return ErrUnknownAccount
	}

	if !covers(sender.Balance, sender.PendingDebits, amount) {
		return ErrInsufficientFunds
	}

	return nil
}

// covers reports whether balance - pending >= amount without overflowing.
func covers(balance int64, pending uint64, amount uint64) bool {
	if balance < 0 {
		return false
	}

	available := uint64(balance)
	if pending > available {
		return false
	}

	return available-pending >= amount
}
