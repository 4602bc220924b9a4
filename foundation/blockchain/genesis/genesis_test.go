package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestLoad(t *testing.T) {
	type table struct {
		name    string
		content string
		valid   bool
		exp     genesis.Genesis
	}

	tt := []table{
		{
			name:    "defaults",
			content: `{}`,
			valid:   true,
			exp:     genesis.Default(),
		},
		{
			name:    "override",
			content: `{"difficulty": 4, "issuer": "Mint", "balances": {"Mint": 50}}`,
			valid:   true,
			exp: genesis.Genesis{
				Difficulty:  4,
				Issuer:      "Mint",
				Placeholder: genesis.DefaultPlaceholder,
				Balances:    map[string]int64{"Bank": genesis.DefaultIssuerBalance, "Mint": 50},
			},
		},
		{
			name:    "difficulty",
			content: `{"difficulty": 65}`,
		},
		{
			name:    "issuer",
			content: `{"issuer": ""}`,
		},
		{
			name:    "negative-balance",
			content: `{"balances": {"Ann": -5}}`,
		},
		{
			name:    "malformed",
			content: `{"difficulty": "three"}`,
		},
	}

	t.Log("Given the need to load the genesis settings from a file.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen loading the %s file.", testID, tst.name)
			{
				f := func(t *testing.T) {
					path := filepath.Join(t.TempDir(), "genesis.json")
					if err := os.WriteFile(path, []byte(tst.content), 0600); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to write the file: %v", failed, testID, err)
					}

					gen, err := genesis.Load(path)
					if (err == nil) != tst.valid {
						t.Fatalf("\t%s\tTest %d:\tShould get valid=%v: err %v", failed, testID, tst.valid, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get valid=%v.", success, testID, tst.valid)

					if !tst.valid {
						return
					}

					if gen.Difficulty != tst.exp.Difficulty || gen.Issuer != tst.exp.Issuer || gen.Placeholder != tst.exp.Placeholder {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected settings: got %+v, exp %+v", failed, testID, gen, tst.exp)
					}
					if len(gen.Balances) != len(tst.exp.Balances) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected balances: got %v, exp %v", failed, testID, gen.Balances, tst.exp.Balances)
					}
					for name, balance := range tst.exp.Balances {
						if gen.Balances[name] != balance {
							t.Fatalf("\t%s\tTest %d:\tShould get the expected balance for %s: got %d, exp %d", failed, testID, name, gen.Balances[name], balance)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected settings.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestCopy(t *testing.T) {
	t.Log("Given the need to hand out genesis settings safely.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a copy is modified.", testID)
		{
			gen := genesis.Default()

			cp := gen.Copy()
			cp.Balances["Bank"] = 1

			if gen.Balances["Bank"] != genesis.DefaultIssuerBalance {
				t.Fatalf("\t%s\tTest %d:\tShould not share the balances map.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not share the balances map.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the file does not exist.", testID)
		{
			if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to load.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail to load.", success, testID)
		}
	}
}
