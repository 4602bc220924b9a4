package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestParseTransfers(t *testing.T) {
	type table struct {
		name   string
		values []string
		valid  bool
		exp    []database.Transfer
	}

	tt := []table{
		{
			name:   "ordered",
			values: []string{"Bank:Ann:5000", "Ann:Ben:1200"},
			valid:  true,
			exp: []database.Transfer{
				{Sender: "Bank", Receiver: "Ann", Amount: 5000},
				{Sender: "Ann", Receiver: "Ben", Amount: 1200},
			},
		},
		{name: "empty", valid: true, exp: []database.Transfer{}},
		{name: "fields", values: []string{"Bank:Ann"}},
		{name: "amount", values: []string{"Bank:Ann:-1"}},
		{name: "receiver", values: []string{"Bank::10"}},
	}

	t.Log("Given the need to read transfers from the command line.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen parsing the %s values.", testID, tst.name)
			{
				f := func(t *testing.T) {
					trans, err := parseTransfers(tst.values)
					if (err == nil) != tst.valid {
						t.Fatalf("\t%s\tTest %d:\tShould get valid=%v: err %v", failed, testID, tst.valid, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get valid=%v.", success, testID, tst.valid)

					if !tst.valid {
						return
					}

					if len(trans) != len(tst.exp) {
						t.Fatalf("\t%s\tTest %d:\tShould get %d transfers: got %d", failed, testID, len(tst.exp), len(trans))
					}
					for i := range trans {
						if trans[i] != tst.exp[i] {
							t.Fatalf("\t%s\tTest %d:\tShould get transfer %d: got %+v, exp %+v", failed, testID, i, trans[i], tst.exp[i])
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get the transfers in order.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestHashCommand(t *testing.T) {
	t.Log("Given the need to compute a block hash from the command line.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen hashing the genesis block fields.", testID)
		{
			var buf bytes.Buffer
			rootCmd.SetOut(&buf)
			rootCmd.SetArgs([]string{"hash", "--timestamp", "2025-01-02 03:04:05", "--tx", "Bank:Genesis:0", "--difficulty", "0"})

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould run the command: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould run the command.", success, testID)

			out := buf.String()
			for _, exp := range []string{
				`Transactions: [{"amount": 0, "receiver": "Genesis", "sender": "Bank"}]`,
				"Hash: 9f5b73511f2af99480fa519bb873efac71c24988a02235a936f95ad9d08232ba",
				"Solved: true",
			} {
				if !strings.Contains(out, exp) {
					t.Fatalf("\t%s\tTest %d:\tShould include %q in:\n%s", failed, testID, exp, out)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould print the hash.", success, testID)
		}
	}
}
