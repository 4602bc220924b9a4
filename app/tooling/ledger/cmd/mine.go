package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	maxAttempts uint64
	timeout     time.Duration
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a single block and report the nonce that solves it.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&prevHash, "prev", "p", database.GenesisPrevHash, "Hash of the previous block.")
	mineCmd.Flags().StringArrayVarP(&transfers, "tx", "x", nil, "Transfer as sender:receiver:amount, repeatable.")
	mineCmd.Flags().Uint64VarP(&maxAttempts, "max-attempts", "m", 0, "Give up after this many attempts, zero for no limit.")
	mineCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Give up after this long.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	trans, err := parseTransfers(transfers)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	block := database.NewBlock(prevHash, trans)

	// The number of attempts needed is unknown, so the bar runs as a spinner
	// showing the attempts made so far.
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("Mining..."),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)

	opts := database.MineOptions{
		MaxAttempts: maxAttempts,
		EvHandler:   trace,
		Progress:    func(attempts uint64) { bar.Set64(int64(attempts)) },
	}

	start := time.Now()
	attempts, err := block.Mine(ctx, difficulty, opts)
	if finishErr := bar.Finish(); finishErr != nil {
		return fmt.Errorf("failed to finish progress bar: %w", finishErr)
	}
	if err != nil {
		return fmt.Errorf("mining after %d attempts: %w", attempts, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hash: %s\n", block.Hash)
	fmt.Fprintf(out, "Nonce: %d\n", block.Nonce)
	fmt.Fprintf(out, "Attempts: %d\n", attempts)
	fmt.Fprintf(out, "Timestamp: %s\n", block.TimeStamp)
	fmt.Fprintf(out, "Elapsed: %s\n", time.Since(start))

	return nil
}
