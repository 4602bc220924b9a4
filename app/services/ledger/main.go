package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/app/services/ledger/handlers"
	"github.com/ardanlabs/ledger/business/demo"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// This is all the configuration for the application and the default values.
	// Configuration values will be passed through the application as individual
	// values.
	cfg := struct {
		conf.Version
		State struct {
			GenesisFile string
			Difficulty  uint          `conf:"default:3"`
			Issuer      string        `conf:"default:Bank"`
			Admission   string        `conf:"default:deferred"`
			MaxAttempts uint64        `conf:"default:0"`
			MineTimeout time.Duration `conf:"default:1m"`
			Background  bool          `conf:"default:false"`
		}
		Debug struct {
			Host string
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Genesis Support

	// A genesis file replaces the defaults for the fields it sets. Without a
	// file the difficulty and issuer come from the configuration.
	gen := genesis.Default()
	switch cfg.State.GenesisFile {
	case "":
		gen.Difficulty = cfg.State.Difficulty
		if cfg.State.Issuer != gen.Issuer {
			gen.Balances[cfg.State.Issuer] = gen.Balances[gen.Issuer]
			delete(gen.Balances, gen.Issuer)
			gen.Issuer = cfg.State.Issuer
		}

	default:
		if gen, err = genesis.Load(cfg.State.GenesisFile); err != nil {
			return fmt.Errorf("unable to load genesis: %w", err)
		}
	}

	// =========================================================================
	// Ledger Support

	// Every run gets a trace id so the log lines for one run can be grouped.
	traceID := uuid.NewString()

	// The ledger packages accept a function of this signature to allow the
	// application to log. The notifications are also sent to anyone
	// listening through the events package.
	evts := events.NewEvents()
	defer evts.Shutdown()

	ev := func(e events.Event) {
		log.Infow(e.Message, "traceid", traceID, "kind", e.Kind)
		if e.Kind != events.KindTrace {
			evts.Send(e)
		}
	}

	m := metrics.New()

	st, err := state.New(state.Config{
		Genesis:     gen,
		Admission:   cfg.State.Admission,
		MaxAttempts: cfg.State.MaxAttempts,
		EvHandler:   ev,
		Metrics:     m,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	// The worker mines accepted transfers in the background so the scenario's
	// mine steps may find nothing left to do.
	if cfg.State.Background {
		log.Infow("startup", "status", "background mining started")
		worker.Run(st, ev)
	}

	// Keep a count of the notifications raised by the run.
	notifications := evts.Acquire(traceID)
	counted := make(chan map[events.Kind]int, 1)
	go func() {
		counts := make(map[events.Kind]int)
		for e := range notifications {
			counts[e.Kind]++
		}
		counted <- counts
	}()

	// =========================================================================
	// Run Scenario

	ctx, cancel := context.WithTimeout(context.Background(), cfg.State.MineTimeout)
	defer cancel()

	res, err := demo.Run(ctx, st, demo.Scenario)
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}

	if err := evts.Release(traceID); err != nil {
		return err
	}

	log.Infow("scenario", "traceid", traceID, "accepted", res.Accepted, "rejected", res.Rejected, "mined", res.Mined, "skipped", res.Skipped, "notifications", <-counted)

	if err := demo.WriteReport(os.Stdout, st); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if cfg.Debug.Host == "" {
		return nil
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Debug.Host)

	debug := http.Server{
		Addr:     cfg.Debug.Host,
		Handler:  handlers.DebugMux(log, st, m),
		ErrorLog: zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	go func() {
		serverErrors <- debug.ListenAndServe()
	}()

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := debug.Shutdown(ctx); err != nil {
			debug.Close()
			return fmt.Errorf("could not stop debug service gracefully: %w", err)
		}
	}

	return nil
}
