package clinic

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrNotPlaying     = errors.New("no patient is being treated")
	ErrNotDayComplete = errors.New("the day is not over")
)

// Phase is where the session stands between receptionist actions.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseDayComplete
	PhaseEnded
)

// String returns a short label for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseDayComplete:
		return "day-complete"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Verdict is how a run ended.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictStaysOpen
	VerdictClosedComplaints
	VerdictMalpractice
)

// String returns the verdict label stored in the ledger.
func (v Verdict) String() string {
	switch v {
	case VerdictStaysOpen:
		return "stays-open"
	case VerdictClosedComplaints:
		return "closed-complaints"
	case VerdictMalpractice:
		return "malpractice"
	default:
		return "none"
	}
}

// ParseVerdict parses a label produced by Verdict.String.
func ParseVerdict(s string) (Verdict, error) {
	for _, v := range []Verdict{VerdictNone, VerdictStaysOpen, VerdictClosedComplaints, VerdictMalpractice} {
		if v.String() == s {
			return v, nil
		}
	}
	return VerdictNone, fmt.Errorf("unknown verdict %q", s)
}

// Closed reports whether the clinic was shut down.
func (v Verdict) Closed() bool {
	return v == VerdictClosedComplaints || v == VerdictMalpractice
}

// Rules are the knobs of a run.
type Rules struct {
	Days           int
	PatientsPerDay int
	PassingAverage float64
}

// DefaultRules returns three days of five patients with a 3-star bar.
func DefaultRules() Rules {
	return Rules{
		Days:           3,
		PatientsPerDay: 5,
		PassingAverage: 3.0,
	}
}

// Review is one finished patient.
type Review struct {
	Day      int
	Sequence int // 1-based position within the day
	Patient  Patient
	Outcome  Outcome
	TimedOut bool
}

// Stars returns the rating awarded for this patient.
func (r Review) Stars() int {
	return r.Outcome.Stars()
}

// Status returns the lines shown to the receptionist after the review.
func (r Review) Status() []string {
	if r.TimedOut {
		return []string{
			fmt.Sprintf("Time ran out treating %s.", r.Patient.Name),
			"A senior doctor stepped in to finish care.",
		}
	}
	if reason := Reason(r.Outcome); reason != "" {
		return strings.Split(reason, "\n")
	}
	return []string{fmt.Sprintf("%s left %d stars.", r.Patient.Name, r.Stars())}
}

// DaySummary is shown when a day's last patient is done.
type DaySummary struct {
	Day     int
	Ratings []int
	Average float64
}

// Ending describes a finished run.
type Ending struct {
	Verdict Verdict
	Average float64
	Ratings []int
	// Reason is the closure narrative for VerdictMalpractice.
	Reason string
}

// Snapshot is the part of a session that survives a restart.
type Snapshot struct {
	Day     int
	Ratings []int
}

// Listener is told about every transition, synchronously.
type Listener interface {
	Reviewed(Review)
	DayCompleted(DaySummary)
	Ended(Ending)
}

// Options configure a new session.
type Options struct {
	Rules    Rules
	Rand     *rand.Rand
	Listener Listener
	// Resume restores a persisted run. Ignored when it does not fit Rules.
	Resume *Snapshot
}

// Session tracks one run: the current day, how many patients were seen
// today, every rating so far and the patient at the desk.
type Session struct {
	rules    Rules
	rng      *rand.Rand
	gen      *Generator
	listener Listener

	day          int
	treatedToday int
	ratings      []int
	phase        Phase
	current      Patient
	lastDay      DaySummary
	ending       Ending
}

// NewSession starts a run and draws the first patient.
func NewSession(opts Options) *Session {
	if opts.Rules.Days <= 0 || opts.Rules.PatientsPerDay <= 0 {
		opts.Rules = DefaultRules()
	}
	if opts.Rand == nil {
		opts.Rand = defaultRNG
	}

	s := &Session{
		rules:    opts.Rules,
		rng:      opts.Rand,
		gen:      NewGenerator(opts.Rand),
		listener: opts.Listener,
		day:      1,
		phase:    PhasePlaying,
	}
	if opts.Resume != nil {
		s.resume(*opts.Resume)
	}
	s.current = s.gen.Generate()
	return s
}

// ResumePoint works out where a persisted run picks up: the day and how
// many of its patients were already seen. ok is false when the snapshot
// does not fit rules and a fresh run should start instead.
func ResumePoint(rules Rules, snap Snapshot) (day, treated int, ok bool) {
	if snap.Day < 1 || snap.Day > rules.Days {
		return 0, 0, false
	}
	day = snap.Day
	treated = len(snap.Ratings) - (day-1)*rules.PatientsPerDay
	if treated >= rules.PatientsPerDay && day < rules.Days {
		// Quit on the day summary: the next day had not started.
		day++
		treated -= rules.PatientsPerDay
	}
	if treated < 0 || treated >= rules.PatientsPerDay {
		return 0, 0, false
	}
	return day, treated, true
}

func (s *Session) resume(snap Snapshot) {
	day, treated, ok := ResumePoint(s.rules, snap)
	if !ok {
		return
	}
	s.day = day
	s.treatedToday = treated
	s.ratings = append([]int(nil), snap.Ratings...)
}

// Rules returns the rules the session runs with.
func (s *Session) Rules() Rules { return s.rules }

// Day returns the current day, starting at 1.
func (s *Session) Day() int { return s.day }

// TreatedToday returns how many patients were finished today.
func (s *Session) TreatedToday() int { return s.treatedToday }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the patient at the desk.
func (s *Session) Current() Patient { return s.current }

// LastDay returns the summary of the most recently completed day.
func (s *Session) LastDay() DaySummary { return s.lastDay }

// Ending returns how the run ended. Only meaningful in PhaseEnded.
func (s *Session) Ending() Ending { return s.ending }

// Ratings returns a copy of every rating of the run so far.
func (s *Session) Ratings() []int {
	return append([]int(nil), s.ratings...)
}

// Average returns the mean of all ratings, 0 when there are none.
func (s *Session) Average() float64 {
	return average(s.ratings)
}

// Snapshot returns the persistable part of the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{Day: s.day, Ratings: s.Ratings()}
}

// SelectMedication sets the medication for the current patient. It can
// be changed any number of times before care is finished.
func (s *Session) SelectMedication(m Medication) error {
	if s.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if m != NoMedication && (m < Tylenol || m > AntiInflammatory) {
		return fmt.Errorf("%w: %d", ErrUnknownMedication, int(m))
	}
	s.current.Medication = m
	return nil
}

// Admit sends the current patient to a specialist.
func (s *Session) Admit() error {
	if s.phase != PhasePlaying {
		return ErrNotPlaying
	}
	s.current.Admitted = true
	return nil
}

// Elapse runs the current patient's countdown. When it reaches zero a
// senior doctor takes over and the resulting review is returned.
func (s *Session) Elapse(seconds int) (*Review, error) {
	if s.phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	s.current.Elapse(seconds)
	if !s.current.Expired() {
		return nil, nil
	}
	r := s.timeout()
	return &r, nil
}

// Timeout ends the current turn as if the countdown ran out. It always
// awards exactly one star and never closes the clinic, whatever the
// condition.
func (s *Session) Timeout() (Review, error) {
	if s.phase != PhasePlaying {
		return Review{}, ErrNotPlaying
	}
	return s.timeout(), nil
}

func (s *Session) timeout() Review {
	s.current.RemainingTime = 0
	r := Review{
		Day:      s.day,
		Sequence: s.treatedToday + 1,
		Patient:  s.current,
		Outcome:  Rated{Rating: 1},
		TimedOut: true,
	}
	s.record(r)
	return r
}

// FinishCare commits the receptionist's choices and evaluates the patient.
func (s *Session) FinishCare() (Review, error) {
	if s.phase != PhasePlaying {
		return Review{}, ErrNotPlaying
	}
	r := Review{
		Day:      s.day,
		Sequence: s.treatedToday + 1,
		Patient:  s.current,
		Outcome:  Evaluate(s.current, s.rng),
	}
	s.record(r)
	return r, nil
}

// ContinueDay leaves the day summary and calls in the next day's first patient.
func (s *Session) ContinueDay() error {
	if s.phase != PhaseDayComplete {
		return ErrNotDayComplete
	}
	s.day++
	s.treatedToday = 0
	s.phase = PhasePlaying
	s.current = s.gen.Generate()
	return nil
}

func (s *Session) record(r Review) {
	if c, ok := r.Outcome.(Closure); ok {
		s.notifyReviewed(r)
		s.end(Ending{
			Verdict: VerdictMalpractice,
			Average: s.Average(),
			Ratings: s.Ratings(),
			Reason:  c.Reason,
		})
		return
	}

	s.ratings = append(s.ratings, r.Stars())
	s.treatedToday++
	s.notifyReviewed(r)

	if s.treatedToday < s.rules.PatientsPerDay {
		s.current = s.gen.Generate()
		return
	}

	today := s.ratings[len(s.ratings)-s.treatedToday:]
	s.lastDay = DaySummary{
		Day:     s.day,
		Ratings: append([]int(nil), today...),
		Average: average(today),
	}
	if s.listener != nil {
		s.listener.DayCompleted(s.lastDay)
	}

	if s.day >= s.rules.Days {
		verdict := VerdictClosedComplaints
		if s.Average() >= s.rules.PassingAverage {
			verdict = VerdictStaysOpen
		}
		s.end(Ending{Verdict: verdict, Average: s.Average(), Ratings: s.Ratings()})
		return
	}
	s.phase = PhaseDayComplete
}

func (s *Session) end(e Ending) {
	s.phase = PhaseEnded
	s.ending = e
	if s.listener != nil {
		s.listener.Ended(e)
	}
}

func (s *Session) notifyReviewed(r Review) {
	if s.listener != nil {
		s.listener.Reviewed(r)
	}
}

func average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
