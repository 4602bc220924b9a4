package admission_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/admission"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestStrategies(t *testing.T) {
	type table struct {
		name     string
		strategy string
		sender   admission.Sender
		amount   uint64
		exp      error
	}

	tt := []table{
		{"deferred-unknown", admission.StrategyDeferred, admission.Sender{}, 1, admission.ErrUnknownAccount},
		{"deferred-zero-unknown", admission.StrategyDeferred, admission.Sender{}, 0, admission.ErrUnknownAccount},
		{"deferred-exact", admission.StrategyDeferred, admission.Sender{Exists: true, Balance: 500}, 500, nil},
		{"deferred-short", admission.StrategyDeferred, admission.Sender{Exists: true, Balance: 500}, 501, admission.ErrInsufficientFunds},
		{"deferred-ignores-pending", admission.StrategyDeferred, admission.Sender{Exists: true, Balance: 500, PendingDebits: 500}, 500, nil},
		{"deferred-negative", admission.StrategyDeferred, admission.Sender{Exists: true, Balance: -1}, 0, admission.ErrInsufficientFunds},
		{"deferred-huge", admission.StrategyDeferred, admission.Sender{Exists: true, Balance: math.MaxInt64}, math.MaxUint64, admission.ErrInsufficientFunds},
		{"projected-unknown", admission.StrategyProjected, admission.Sender{}, 1, admission.ErrUnknownAccount},
		{"projected-fits", admission.StrategyProjected, admission.Sender{Exists: true, Balance: 500, PendingDebits: 200}, 300, nil},
		{"projected-overdraw", admission.StrategyProjected, admission.Sender{Exists: true, Balance: 500, PendingDebits: 200}, 301, admission.ErrInsufficientFunds},
		{"projected-pending-exceeds", admission.StrategyProjected, admission.Sender{Exists: true, Balance: 500, PendingDebits: 600}, 0, admission.ErrInsufficientFunds},
	}

	t.Log("Given the need to admit transfers into the mempool.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen using the %s strategy.", testID, tst.strategy)
			{
				f := func(t *testing.T) {
					fn, err := admission.Retrieve(tst.strategy)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to retrieve the strategy: %v", failed, testID, err)
					}

					err = fn(tst.sender, tst.amount)
					if !errors.Is(err, tst.exp) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected result: got %v, exp %v", failed, testID, err, tst.exp)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected result.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestRetrieve(t *testing.T) {
	t.Log("Given the need to look up admission strategies by name.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the name uses a different case.", testID)
		{
			if _, err := admission.Retrieve("Projected"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould ignore case: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould ignore case.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the strategy does not exist.", testID)
		{
			if _, err := admission.Retrieve("tip"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to retrieve the strategy.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail to retrieve the strategy.", success, testID)
		}
	}
}

func TestBounds(t *testing.T) {
	type table struct {
		name   string
		check  func(b admission.Bounds, amount uint64) error
		bounds admission.Bounds
		amount uint64
		exp    error
	}

	tt := []table{
		{"credit-fits", admission.CheckCredit, admission.Bounds{Balance: 100, PendingCredits: 50}, 50, nil},
		{"credit-max", admission.CheckCredit, admission.Bounds{Balance: math.MaxInt64 - 10, PendingCredits: 5}, 5, nil},
		{"credit-over", admission.CheckCredit, admission.Bounds{Balance: math.MaxInt64}, 1, admission.ErrBalanceOverflow},
		{"credit-pending-over", admission.CheckCredit, admission.Bounds{Balance: 0, PendingCredits: math.MaxInt64}, 1, admission.ErrBalanceOverflow},
		{"credit-negative-balance", admission.CheckCredit, admission.Bounds{Balance: -10}, math.MaxInt64 + 10, nil},
		{"credit-saturated", admission.CheckCredit, admission.Bounds{PendingCredits: math.MaxUint64}, 0, admission.ErrBalanceOverflow},
		{"debit-fits", admission.CheckDebit, admission.Bounds{Balance: 100, PendingDebits: 500}, 100, nil},
		{"debit-min", admission.CheckDebit, admission.Bounds{Balance: 0, PendingDebits: math.MaxInt64}, 1, nil},
		{"debit-under", admission.CheckDebit, admission.Bounds{Balance: 0, PendingDebits: math.MaxInt64}, 2, admission.ErrBalanceOverflow},
		{"debit-saturated", admission.CheckDebit, admission.Bounds{Balance: math.MaxInt64, PendingDebits: math.MaxUint64}, 1, admission.ErrBalanceOverflow},
	}

	t.Log("Given the need to keep balances within range.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					err := tst.check(tst.bounds, tst.amount)
					if !errors.Is(err, tst.exp) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected result: got %v, exp %v", failed, testID, err, tst.exp)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected result.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
