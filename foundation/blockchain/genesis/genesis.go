// Package genesis maintains access to the genesis settings.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/business/sys/validate"
)

// Default values for a new chain.
const (
	DefaultDifficulty    = 3
	DefaultIssuer        = "Bank"
	DefaultIssuerBalance = 1_000_000
	DefaultPlaceholder   = "Genesis"
)

// Genesis represents the settings a new chain starts with.
type Genesis struct {
	Difficulty  uint             `json:"difficulty" validate:"lte=64"`    // Number of leading 0's a block hash needs.
	Issuer      string           `json:"issuer" validate:"required"`      // Account exempt from funds checks.
	Placeholder string           `json:"placeholder" validate:"required"` // Receiver of the genesis placeholder transfer.
	Balances    map[string]int64 `json:"balances" validate:"dive,gte=0"`  // Accounts seeded at construction.
}

// Default returns the genesis settings for a chain with a difficulty of 3
// and the issuer seeded with a large balance.
func Default() Genesis {
	return Genesis{
		Difficulty:  DefaultDifficulty,
		Issuer:      DefaultIssuer,
		Placeholder: DefaultPlaceholder,
		Balances:    map[string]int64{DefaultIssuer: DefaultIssuerBalance},
	}
}

// Validate checks the genesis settings can be used to start a chain.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	return nil
}

// Copy returns a copy of the genesis settings that does not share the
// balances map.
func (g Genesis) Copy() Genesis {
	balances := make(map[string]int64, len(g.Balances))
	for name, balance := range g.Balances {
		balances[name] = balance
	}
	g.Balances = balances

	return g
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file keep
// their default values and balances are merged over the default balances.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
