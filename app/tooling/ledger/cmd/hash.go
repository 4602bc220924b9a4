package cmd

import (
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	prevHash  string
	timeStamp string
	nonce     uint64
	transfers []string
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Compute the hash of a block from its fields.",
	RunE:  hashRun,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVarP(&prevHash, "prev", "p", database.GenesisPrevHash, "Hash of the previous block.")
	hashCmd.Flags().StringVarP(&timeStamp, "timestamp", "t", "", "Block timestamp, defaults to now.")
	hashCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Block nonce.")
	hashCmd.Flags().StringArrayVarP(&transfers, "tx", "x", nil, "Transfer as sender:receiver:amount, repeatable.")
}

func hashRun(cmd *cobra.Command, args []string) error {
	trans, err := parseTransfers(transfers)
	if err != nil {
		return err
	}

	ts := timeStamp
	if ts == "" {
		ts = time.Now().Format(database.TimestampFormat)
	}

	block := database.Block{
		TimeStamp: ts,
		PrevHash:  prevHash,
		Trans:     trans,
		Nonce:     nonce,
	}
	hash := block.ComputeHash()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transactions: %s\n", database.CanonicalTransfers(trans))
	fmt.Fprintf(out, "Timestamp: %s\n", ts)
	fmt.Fprintf(out, "Hash: %s\n", hash)
	fmt.Fprintf(out, "Solved: %t\n", database.IsHashSolved(difficulty, hash))

	return nil
}
