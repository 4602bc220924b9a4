// Package cmd contains the ledger tooling commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	difficulty uint
	verbose    bool
	log        *zap.SugaredLogger
)

func init() {
	rootCmd.PersistentFlags().UintVarP(&difficulty, "difficulty", "d", genesis.DefaultDifficulty, "Number of leading zeros a block hash needs.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log trace messages.")
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Tooling for the proof of work ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New("LEDGER-TOOL", "stderr")
		return err
	},
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// trace logs the message when verbose output was requested. It has the
// signature the database package expects for tracing.
func trace(v string, args ...any) {
	if verbose && log != nil {
		log.Infow(fmt.Sprintf(v, args...))
	}
}
