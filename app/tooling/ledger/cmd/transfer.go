package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// parseTransfers converts values of the form sender:receiver:amount into
// transfers, keeping their order.
func parseTransfers(values []string) ([]database.Transfer, error) {
	trans := make([]database.Transfer, 0, len(values))

	for _, value := range values {
		parts := strings.Split(value, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("transfer %q: expected sender:receiver:amount", value)
		}

		amount, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("transfer %q: amount: %w", value, err)
		}

		tx, err := database.NewTransfer(database.AccountID(parts[0]), database.AccountID(parts[1]), amount)
		if err != nil {
			return nil, err
		}

		trans = append(trans, tx)
	}

	return trans, nil
}
