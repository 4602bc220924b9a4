package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/business/demo"
	"github.com/ardanlabs/ledger/foundation/blockchain/admission"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var strategy string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the banking scenario and print the resulting ledger.",
	RunE:  demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&strategy, "admission", "a", admission.StrategyDeferred, "Admission strategy: deferred or projected.")
	demoCmd.Flags().Uint64VarP(&maxAttempts, "max-attempts", "m", 0, "Give up mining after this many attempts, zero for no limit.")
}

func demoRun(cmd *cobra.Command, args []string) error {
	gen := genesis.Default()
	gen.Difficulty = difficulty

	st, err := state.New(state.Config{
		Genesis:     gen,
		Admission:   strategy,
		MaxAttempts: maxAttempts,
		EvHandler:   printEvent,
	})
	if err != nil {
		return err
	}

	if _, err := demo.Run(cmd.Context(), st, demo.Scenario); err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	return demo.WriteReport(cmd.OutOrStdout(), st)
}

// printEvent writes notifications to the terminal and sends traces to the
// logger.
func printEvent(ev events.Event) {
	switch ev.Kind {
	case events.KindTrace:
		trace("%s", ev.Message)
	case events.KindTransferAccepted, events.KindBlockMined:
		pterm.Success.Println(ev.Message)
	case events.KindTransferRejected, events.KindMiningAborted:
		pterm.Warning.Println(ev.Message)
	default:
		pterm.Info.Println(ev.Message)
	}
}
