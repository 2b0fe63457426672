package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui"
	"github.com/mrsinham/doctoroncall/internal/clinic"
	"github.com/mrsinham/doctoroncall/internal/config"
	"github.com/mrsinham/doctoroncall/internal/journal"
	"github.com/mrsinham/doctoroncall/internal/ledger"
	"github.com/mrsinham/doctoroncall/internal/logging"
	"github.com/mrsinham/doctoroncall/internal/memory"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func runPlay(args []string) error {
	var flags commonFlags
	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(playLogOptions(cfg))
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	rules := cfg.ClinicRules()
	store := memory.NewStore(cfg.MemoryPath, rules.PatientsPerDay)
	saved, err := store.Load()
	if err != nil {
		log.WithError(err).WithField("path", store.Path()).Warn("saved progress discarded")
	}

	resumeDay := 0
	snap := clinic.Snapshot{Day: saved.Day, Ratings: saved.Ratings}
	if saved.HasProgress() {
		if day, _, ok := clinic.ResumePoint(rules, snap); ok {
			resumeDay = day
		}
	}

	l := openLedger(ctx, cfg, flags.noLedger, log)
	if l != nil {
		defer l.Close()
	}

	seed := resolveSeed(cfg.Seed)
	factory := func(resume bool) *clinic.Session {
		return startSession(ctx, sessionDeps{
			rules:  rules,
			seed:   seed,
			store:  store,
			ledger: l,
			log:    log,
			resume: resume,
			saved:  saved,
		})
	}

	game, err := tui.Run(tui.Options{Rules: rules, ResumeDay: resumeDay, NewSession: factory})
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	if e, ok := game.Ending(); ok {
		log.WithField("verdict", e.Verdict.String()).Info("shift over")
	} else {
		log.Info("shift abandoned")
	}
	return nil
}

// playLogOptions keeps logs off the terminal, which belongs to the game.
// Without a log file they are dropped.
func playLogOptions(cfg config.Config) logging.Options {
	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.JSONLogs()}
	if cfg.LogFile == "" {
		opts.Output = io.Discard
	}
	return opts
}

type sessionDeps struct {
	rules  clinic.Rules
	seed   uint64
	store  *memory.Store
	ledger *ledger.Ledger
	log    *logrus.Logger
	resume bool
	saved  memory.Memory
}

// startSession opens a run in the ledger, wires the journal and creates
// the session, resumed from saved progress when asked.
func startSession(ctx context.Context, d sessionDeps) *clinic.Session {
	runID := ledger.NewRunID()
	log := d.log.WithField("run_id", runID)

	var rec journal.Recorder
	if d.ledger != nil {
		err := d.ledger.StartRun(ctx, ledger.RunStart{ID: runID, Seed: d.seed, StartedAt: time.Now()})
		if err != nil {
			log.WithError(err).Warn("run will not be recorded")
		} else {
			rec = d.ledger
		}
	}

	opts := clinic.Options{Rules: d.rules, Rand: newRNG(d.seed)}
	jopts := journal.Options{RunID: runID, Store: d.store, Ledger: rec, Logger: d.log}
	if d.resume {
		opts.Resume = &clinic.Snapshot{Day: d.saved.Day, Ratings: d.saved.Ratings}
		jopts.Resume = &d.saved
	} else if d.store != nil {
		if err := d.store.Clear(); err != nil {
			log.WithError(err).Warn("failed to clear saved progress")
		}
	}
	opts.Listener = journal.New(ctx, jopts)

	s := clinic.NewSession(opts)
	log.WithFields(logrus.Fields{
		"seed":    d.seed,
		"day":     s.Day(),
		"resumed": d.resume,
	}).Info("shift started")
	return s
}
