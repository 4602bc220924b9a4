package database

// Account represents information stored in the database for an individual account.
type Account struct {
	AccountID AccountID
	Balance   int64
}

// =============================================================================

// AccountID represents the name of an account that sends or receives value
// in a transfer. Accounts are created the first time they receive funds.
type AccountID string

// ToAccountID converts a string to an account and validates it is not empty.
func ToAccountID(s string) (AccountID, error) {
	a := AccountID(s)
	if !a.IsAccountID() {
		return "", ErrInvalidAccount
	}

	return a, nil
}

// IsAccountID verifies whether the underlying data represents a usable
// account name.
func (a AccountID) IsAccountID() bool {
	return len(a) > 0
}
