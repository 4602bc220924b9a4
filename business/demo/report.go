package demo

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/pterm/pterm"
)

// BalanceTable returns the balances in the order the accounts were created,
// with a header row.
func BalanceTable(st *state.State) pterm.TableData {
	data := pterm.TableData{{"Account", "Balance"}}

	for _, account := range st.QueryAccounts() {
		data = append(data, []string{string(account.AccountID), "$" + strconv.FormatInt(account.Balance, 10)})
	}

	return data
}

// WriteReport writes the balances, the result of validating the chain and
// a dump of every block.
func WriteReport(w io.Writer, st *state.State) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(BalanceTable(st)).Srender()
	if err != nil {
		return fmt.Errorf("rendering balances: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nBalances:\n%s\n", table); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nBlockchain is valid: %t\n", st.IsChainValid()); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "\nBlockchain Data:\n"); err != nil {
		return err
	}

	return st.WriteChain(w)
}
