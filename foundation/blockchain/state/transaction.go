package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/admission"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// Set of reasons a transfer is refused at submission.
var (
	ErrUnknownAccount    = admission.ErrUnknownAccount
	ErrInsufficientFunds = admission.ErrInsufficientFunds
	ErrBalanceOverflow   = admission.ErrBalanceOverflow
)

// SubmitTransfer validates the transfer and adds it to the mempool. Funds
// are not moved until the transfer is mined. The issuer account is never
// checked for funds.
func (s *State) SubmitTransfer(tx database.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := tx.Validate(); err != nil {
		s.metrics.TransfersRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
		s.notify(events.KindTransferRejected, "Transaction failed: %s", err)
		return err
	}

	if tx.Sender != s.issuer {
		sender := admission.Sender{
			Exists:        s.db.Exists(tx.Sender),
			Balance:       s.db.Balance(tx.Sender),
			PendingDebits: s.mempool.PendingDebits(tx.Sender),
		}

		if err := s.admit(sender, tx.Amount); err != nil {
			switch {
			case errors.Is(err, ErrUnknownAccount):
				s.metrics.TransfersRejected.WithLabelValues(metrics.ReasonUnknownAccount).Inc()
				s.notify(events.KindTransferRejected, "Transaction failed: %s does not have an account.", tx.Sender)

			case errors.Is(err, ErrInsufficientFunds):
				s.metrics.TransfersRejected.WithLabelValues(metrics.ReasonInsufficientFunds).Inc()
				s.notify(events.KindTransferRejected, "Transaction failed: %s has insufficient funds.", tx.Sender)
			}

			return fmt.Errorf("transfer %s: %w", tx, err)
		}
	}

	if err := s.checkBounds(tx); err != nil {
		s.metrics.TransfersRejected.WithLabelValues(metrics.ReasonOverflow).Inc()
		s.notify(events.KindTransferRejected, "Transaction failed: %s", err)
		return fmt.Errorf("transfer %s: %w", tx, err)
	}

	n := s.mempool.Add(tx)

	s.metrics.TransfersAccepted.Inc()
	s.notify(events.KindTransferAccepted, "Transaction added: %s", tx)
	s.trace("state: SubmitTransfer: mempool: count[%d]", n)

	s.signalWorker()

	return nil
}

// CreateTransaction submits a transfer between the two accounts and reports
// if the transfer was accepted. The reason for a rejection is delivered
// through the event handler.
func (s *State) CreateTransaction(sender string, receiver string, amount uint64) bool {
	tx := database.Transfer{
		Sender:   database.AccountID(sender),
		Receiver: database.AccountID(receiver),
		Amount:   amount,
	}

	return s.SubmitTransfer(tx) == nil
}

// =============================================================================

// checkBounds verifies that applying the transfer after everything already
// waiting in the mempool keeps both balances within the int64 range. The
// issuer is never debited so only its credits are checked. The caller must
// hold the lock.
func (s *State) checkBounds(tx database.Transfer) error {
	receiver := admission.Bounds{
		Balance:        s.db.Balance(tx.Receiver),
		PendingCredits: s.mempool.PendingCredits(tx.Receiver),
	}

	if err := admission.CheckCredit(receiver, tx.Amount); err != nil {
		return fmt.Errorf("%s: %w", tx.Receiver, err)
	}

	if tx.Sender == s.issuer {
		return nil
	}

	sender := admission.Bounds{
		Balance:       s.db.Balance(tx.Sender),
		PendingDebits: s.mempool.PendingDebits(tx.Sender),
	}

	if err := admission.CheckDebit(sender, tx.Amount); err != nil {
		return fmt.Errorf("%s: %w", tx.Sender, err)
	}

	return nil
}
