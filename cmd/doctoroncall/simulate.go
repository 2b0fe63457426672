package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/components"
	"github.com/mrsinham/doctoroncall/internal/clinic"
	"github.com/mrsinham/doctoroncall/internal/journal"
	"github.com/mrsinham/doctoroncall/internal/ledger"
	"github.com/mrsinham/doctoroncall/internal/logging"
	"github.com/mrsinham/doctoroncall/internal/sim"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Outcome lines printed at the end of a simulated run.
var verdictLines = map[clinic.Verdict]string{
	clinic.VerdictStaysOpen:        "Clinic stays open",
	clinic.VerdictClosedComplaints: "Clinic closed: too many complaints",
	clinic.VerdictMalpractice:      "Clinic closed: malpractice",
}

func runSimulate(args []string, out io.Writer) error {
	var (
		flags    commonFlags
		strategy string
		quiet    bool
	)
	fs := pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	flags.register(fs)
	fs.StringVar(&strategy, "strategy", "perfect", "Receptionist strategy: perfect, careless, cautious, idle, random")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Only print the outcome")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Output: os.Stderr, JSON: cfg.JSONLogs()})
	if err != nil {
		return err
	}
	defer closeLog()

	seed := resolveSeed(cfg.Seed)
	strat, err := sim.ParseStrategy(strategy, newRNG(seed^0x5eed))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runID := ledger.NewRunID()
	var rec journal.Recorder
	if l := openLedger(ctx, cfg, flags.noLedger, log); l != nil {
		defer l.Close()
		if err := l.StartRun(ctx, ledger.RunStart{ID: runID, Seed: seed, StartedAt: time.Now()}); err != nil {
			log.WithError(err).Warn("run will not be recorded")
		} else {
			rec = l
		}
	}

	log.WithFields(logrus.Fields{"run_id": runID, "seed": seed, "strategy": strat.Name()}).Info("simulation started")

	// Simulated runs never touch the player's saved progress.
	j := journal.New(ctx, journal.Options{RunID: runID, Ledger: rec, Logger: log})
	session := clinic.NewSession(clinic.Options{Rules: cfg.ClinicRules(), Rand: newRNG(seed), Listener: j})

	if !quiet {
		fmt.Fprintf(out, "Strategy: %s  Seed: %d\n\n", strat.Name(), seed)
	}
	ending, err := sim.Run(ctx, session, strat, func(r clinic.Review) {
		if !quiet {
			printReview(out, r)
		}
	})
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if !quiet {
		fmt.Fprintln(out)
	}
	if ending.Verdict == clinic.VerdictMalpractice {
		for _, line := range strings.Split(ending.Reason, "\n") {
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintln(out, verdictLines[ending.Verdict])
	fmt.Fprintf(out, "Final Rating: %.2f stars\n", ending.Average)
	return nil
}

func printReview(out io.Writer, r clinic.Review) {
	action := r.Patient.Medication.String()
	if r.Patient.Admitted {
		action += " +admit"
	}
	if r.TimedOut {
		action = "timed out"
	}
	fmt.Fprintf(out, "Day %d #%d  %-12s %-24s %-22s %s %d\n",
		r.Day, r.Sequence, r.Patient.Name, r.Patient.Condition, action, components.Stars(r.Stars()), r.Stars())
	if reason := clinic.Reason(r.Outcome); reason != "" && !clinic.Fatal(r.Outcome) {
		fmt.Fprintf(out, "        %s\n", reason)
	}
}
