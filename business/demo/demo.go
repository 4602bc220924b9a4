// Package demo runs the scripted banking scenario against a ledger and
// renders the results for the terminal.
package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// Step is a single action in a scenario. A step with Mine set asks the
// ledger to mine the pending transfers and ignores the other fields.
type Step struct {
	Mine     bool
	Sender   string
	Receiver string
	Amount   uint64
}

// Transfer constructs a step that submits a transfer.
func Transfer(sender string, receiver string, amount uint64) Step {
	return Step{Sender: sender, Receiver: receiver, Amount: amount}
}

// Mine constructs a step that mines the pending transfers.
func Mine() Step {
	return Step{Mine: true}
}

// String implements the fmt.Stringer interface for logging.
func (s Step) String() string {
	if s.Mine {
		return "mine"
	}
	return fmt.Sprintf("%s -> %s: $%d", s.Sender, s.Receiver, s.Amount)
}

// Scenario is the banking script: the bank funds one customer and a set of
// customers without accounts try to move money around.
var Scenario = []Step{
	Transfer("Bank", "Ann", 5000),
	Transfer("Ann", "Ben", 1200),
	Transfer("Emma", "John", 1500),
	Transfer("Bob", "David", 800),
	Mine(),
	Transfer("Charlie", "Emma", 700),
	Transfer("Emma", "David", 300),
	Mine(),
}

// =============================================================================

// Result summarizes what happened while running a scenario.
type Result struct {
	Accepted int
	Rejected int
	Mined    int
	Skipped  int
}

// Run executes the steps in order against the ledger. A rejected transfer
// or a mine request with nothing pending does not stop the scenario. Any
// other mining failure, like a cancelled context, does.
func Run(ctx context.Context, st *state.State, steps []Step) (Result, error) {
	var res Result

	for i, step := range steps {
		if !step.Mine {
			if !st.CreateTransaction(step.Sender, step.Receiver, step.Amount) {
				res.Rejected++
				continue
			}
			res.Accepted++
			continue
		}

		_, err := st.MineNewBlock(ctx)
		switch {
		case err == nil:
			res.Mined++

		case errors.Is(err, state.ErrNoTransactions):
			res.Skipped++

		default:
			return res, fmt.Errorf("step[%d]: %s: %w", i, step, err)
		}
	}

	return res, nil
}
