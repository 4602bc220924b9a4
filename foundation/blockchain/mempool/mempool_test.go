package mempool_test

import (
	"math"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name    string
		txs     []database.Transfer
		account database.AccountID
		debits  uint64
		credits uint64
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Transfer{
				{Sender: "Bank", Receiver: "Ann", Amount: 5000},
				{Sender: "Ann", Receiver: "Ben", Amount: 1200},
				{Sender: "Ann", Receiver: "Ben", Amount: 1200},
				{Sender: "Ben", Receiver: "Ann", Amount: 10},
			},
			account: "Ann",
			debits:  2400,
			credits: 5010,
		},
		{
			name: "saturate",
			txs: []database.Transfer{
				{Sender: "Bank", Receiver: "Ann", Amount: math.MaxUint64 - 1},
				{Sender: "Bank", Receiver: "Ann", Amount: 5},
			},
			account: "Bank",
			debits:  math.MaxUint64,
		},
		{
			name: "saturate-credits",
			txs: []database.Transfer{
				{Sender: "Bank", Receiver: "Ann", Amount: math.MaxUint64 - 1},
				{Sender: "Bank", Receiver: "Ann", Amount: 5},
			},
			account: "Ann",
			credits: math.MaxUint64,
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transfers.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould report the new count: got %d, exp %d", failed, testID, n, i+1)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add transfers including duplicates.", success, testID)

					if mp.Count() != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d transfers: got %d", failed, testID, len(tst.txs), mp.Count())
					}
					t.Logf("\t%s\tTest %d:\tShould have the right count.", success, testID)

					picked := mp.PickAll()
					for i := range tst.txs {
						if picked[i] != tst.txs[i] {
							t.Fatalf("\t%s\tTest %d:\tShould keep submission order at %d: got %v, exp %v", failed, testID, i, picked[i], tst.txs[i])
						}
					}
					t.Logf("\t%s\tTest %d:\tShould keep submission order.", success, testID)

					picked[0].Amount = 1
					if mp.PickAll()[0] != tst.txs[0] {
						t.Fatalf("\t%s\tTest %d:\tShould return a copy of the pool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould return a copy of the pool.", success, testID)

					if got := mp.PendingDebits(tst.account); got != tst.debits {
						t.Fatalf("\t%s\tTest %d:\tShould total pending debits: got %d, exp %d", failed, testID, got, tst.debits)
					}
					t.Logf("\t%s\tTest %d:\tShould total pending debits.", success, testID)

					if got := mp.PendingCredits(tst.account); got != tst.credits {
						t.Fatalf("\t%s\tTest %d:\tShould total pending credits: got %d, exp %d", failed, testID, got, tst.credits)
					}
					t.Logf("\t%s\tTest %d:\tShould total pending credits.", success, testID)

					mp.Truncate()
					if mp.Count() != 0 || len(mp.PickAll()) != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be empty after truncate.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be empty after truncate.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
