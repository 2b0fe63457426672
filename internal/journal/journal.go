// Package journal records a running session: progress goes to the memory
// file so a shift can be resumed, every review goes to the ledger, and
// transitions are logged.
package journal

import (
	"context"
	"time"

	"github.com/mrsinham/doctoroncall/internal/clinic"
	"github.com/mrsinham/doctoroncall/internal/ledger"
	"github.com/mrsinham/doctoroncall/internal/memory"
	"github.com/sirupsen/logrus"
)

// Recorder stores reviews and endings. *ledger.Ledger implements it.
type Recorder interface {
	RecordReview(ctx context.Context, r ledger.ReviewRecord) error
	EndRun(ctx context.Context, r ledger.RunEnd) error
}

// Journal implements clinic.Listener. Failures are logged and never
// interrupt play.
type Journal struct {
	ctx    context.Context
	runID  string
	store  *memory.Store
	ledger Recorder
	log    logrus.FieldLogger
	now    func() time.Time

	mem memory.Memory
}

// Options configure a journal. Store and Ledger may be nil.
type Options struct {
	RunID  string
	Store  *memory.Store
	Ledger Recorder
	Logger logrus.FieldLogger
	// Resume is the memory the session was resumed from.
	Resume *memory.Memory
}

// New creates a journal for one run.
func New(ctx context.Context, opts Options) *Journal {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	j := &Journal{
		ctx:    ctx,
		runID:  opts.RunID,
		store:  opts.Store,
		ledger: opts.Ledger,
		log:    log.WithField("run_id", opts.RunID),
		now:    time.Now,
		mem:    memory.New(),
	}
	if opts.Resume != nil {
		j.mem = memory.Memory{Day: opts.Resume.Day, Ratings: append([]int{}, opts.Resume.Ratings...)}
	}
	return j
}

// Memory returns the progress recorded so far.
func (j *Journal) Memory() memory.Memory {
	return memory.Memory{Day: j.mem.Day, Ratings: append([]int{}, j.mem.Ratings...)}
}

// Reviewed saves progress and records the review.
func (j *Journal) Reviewed(r clinic.Review) {
	fields := logrus.Fields{
		"day":       r.Day,
		"sequence":  r.Sequence,
		"patient":   r.Patient.Name,
		"condition": r.Patient.Condition.String(),
		"stars":     r.Stars(),
	}
	switch {
	case clinic.Fatal(r.Outcome):
		j.log.WithFields(fields).Warn("severe case mishandled")
	case r.TimedOut:
		j.log.WithFields(fields).Info("patient timed out")
	default:
		j.log.WithFields(fields).Info("patient reviewed")
	}

	if !clinic.Fatal(r.Outcome) {
		j.mem.Day = r.Day
		j.mem.AddReview(r.Stars())
		if j.store != nil {
			if err := j.store.Save(j.mem); err != nil {
				j.log.WithError(err).Error("failed to save memory")
			}
		}
	}

	if j.ledger != nil {
		rec := ledger.ReviewRecord{
			RunID:       j.runID,
			Day:         r.Day,
			Sequence:    r.Sequence,
			Patient:     r.Patient.Name,
			Condition:   r.Patient.Condition.String(),
			Personality: r.Patient.Personality.String(),
			Medication:  r.Patient.Medication.String(),
			Admitted:    r.Patient.Admitted,
			TimedOut:    r.TimedOut,
			Stars:       r.Stars(),
			Reason:      clinic.Reason(r.Outcome),
			ReviewedAt:  j.now(),
		}
		if err := j.ledger.RecordReview(j.ctx, rec); err != nil {
			j.log.WithError(err).Error("failed to record review")
		}
	}
}

// DayCompleted logs the day's summary.
func (j *Journal) DayCompleted(d clinic.DaySummary) {
	j.log.WithFields(logrus.Fields{
		"day":     d.Day,
		"ratings": d.Ratings,
		"average": d.Average,
	}).Info("day completed")
}

// Ended records the ending and clears the memory so the next launch
// starts a fresh run.
func (j *Journal) Ended(e clinic.Ending) {
	j.log.WithFields(logrus.Fields{
		"verdict": e.Verdict.String(),
		"average": e.Average,
	}).Info("run ended")

	if j.ledger != nil {
		end := ledger.RunEnd{ID: j.runID, Verdict: e.Verdict.String(), Average: e.Average, EndedAt: j.now()}
		if err := j.ledger.EndRun(j.ctx, end); err != nil {
			j.log.WithError(err).Error("failed to end run")
		}
	}

	j.mem.Reset()
	if j.store != nil {
		if err := j.store.Clear(); err != nil {
			j.log.WithError(err).Error("failed to clear memory")
		}
	}
}
