package database

import (
	"errors"
	"fmt"
	"math"

	"github.com/ardanlabs/ledger/business/sys/validate"
)

// ErrInvalidAccount is returned when an account name is empty.
var ErrInvalidAccount = errors.New("invalid account format")

// MaxAmount is the largest value a single transfer can move. Balances are
// signed so the issuing account can go negative.
const MaxAmount = math.MaxInt64

// =============================================================================

// Transfer is the transactional information between two parties. A transfer
// is never mutated once it's been constructed.
type Transfer struct {
	Sender   AccountID `json:"sender" validate:"required"`
	Receiver AccountID `json:"receiver" validate:"required"`
	Amount   uint64    `json:"amount" validate:"lte=9223372036854775807"`
}

// NewTransfer constructs a new transfer and validates its fields.
func NewTransfer(sender AccountID, receiver AccountID, amount uint64) (Transfer, error) {
	tx := Transfer{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}

	if err := tx.Validate(); err != nil {
		return Transfer{}, err
	}

	return tx, nil
}

// Validate checks the transfer names both parties and carries an amount
// that can be applied to a balance.
func (tx Transfer) Validate() error {
	if err := validate.Check(tx); err != nil {
		return fmt.Errorf("invalid transfer: %w", err)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Transfer) String() string {
	return fmt.Sprintf("%s -> %s: $%d", tx.Sender, tx.Receiver, tx.Amount)
}

// copyTransfers returns a copy of the transfers so a block never shares
// its backing array with the caller.
func copyTransfers(trans []Transfer) []Transfer {
	cp := make([]Transfer, len(trans))
	copy(cp, trans)
	return cp
}
