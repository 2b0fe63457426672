package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/doctoroncall/internal/ledger"
	"github.com/mrsinham/doctoroncall/internal/logging"
	"github.com/spf13/pflag"
)

func runHistory(args []string, out io.Writer) error {
	var (
		flags commonFlags
		limit int
		runID string
	)
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	flags.register(fs)
	fs.IntVar(&limit, "limit", 10, "Number of runs to list")
	fs.StringVar(&runID, "run", "", "Show every patient of one run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}
	if flags.noLedger {
		return errors.New("history needs the ledger")
	}

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, Output: os.Stderr, JSON: cfg.JSONLogs()})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	l, err := ledger.Open(ctx, cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer l.Close()
	log.WithField("ledger", cfg.LedgerPath).Debug("ledger opened")

	if runID != "" {
		return printRun(ctx, out, l, runID)
	}
	return printRuns(ctx, out, l, limit)
}

func printRuns(ctx context.Context, out io.Writer, l *ledger.Ledger, limit int) error {
	runs, err := l.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tPATIENTS\tAVERAGE\tOUTCOME\tSEED")
	for _, r := range runs {
		outcome, average := "unfinished", "-"
		if r.Finished() {
			outcome = r.Verdict
			average = fmt.Sprintf("%.2f", r.Average)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			r.ID, humanize.Time(r.StartedAt), humanize.Comma(int64(r.Patients)), average, outcome, r.Seed)
	}
	return tw.Flush()
}

func printRun(ctx context.Context, out io.Writer, l *ledger.Ledger, runID string) error {
	reviews, err := l.Reviews(ctx, runID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return fmt.Errorf("no patients recorded for run %s", runID)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tPATIENT\tCONDITION\tMEDICATION\tADMITTED\tSTARS\tNOTE")
	for _, r := range reviews {
		note := r.Reason
		if r.TimedOut {
			note = "timed out"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%d\t%s\n",
			humanize.Ordinal(r.Day)+" #"+fmt.Sprint(r.Sequence), r.Patient, r.Condition, r.Medication, r.Admitted, r.Stars, firstLine(note))
	}
	return tw.Flush()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
