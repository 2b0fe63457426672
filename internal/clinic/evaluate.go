package clinic

import (
	"fmt"
	"math/rand/v2"
)

// Outcome is the result of evaluating a finished patient. It is one of
// Rated, Complaint or Closure.
type Outcome interface {
	// Stars is the rating the patient leaves, 0 for a closure.
	Stars() int
	outcome()
}

// Rated is a rating with nothing to report.
type Rated struct {
	Rating int
}

func (r Rated) Stars() int { return r.Rating }
func (Rated) outcome()     {}

// Complaint is a low rating with a complaint attached. The run goes on.
type Complaint struct {
	Rating int
	Reason string
}

func (c Complaint) Stars() int { return c.Rating }
func (Complaint) outcome()     {}

// Closure ends the run: a severe case was mishandled.
type Closure struct {
	Reason string
}

func (Closure) Stars() int { return 0 }
func (Closure) outcome()   {}

// Fatal reports whether o closes the clinic.
func Fatal(o Outcome) bool {
	_, ok := o.(Closure)
	return ok
}

// Reason returns the complaint or closure text of o, or "" for a plain rating.
func Reason(o Outcome) string {
	switch o := o.(type) {
	case Complaint:
		return o.Reason
	case Closure:
		return o.Reason
	default:
		return ""
	}
}

// Evaluate rates the care p received. Only the star band is reproducible
// for a given patient state; the exact value inside the band comes from rng.
// If rng is nil, uses shared default RNG.
func Evaluate(p Patient, rng *rand.Rand) Outcome {
	if rng == nil {
		rng = defaultRNG
	}
	correct := IsCorrect(p.Condition, p.Medication)

	if p.Severe() {
		if p.Admitted && correct {
			return Rated{Rating: starsBetween(rng, 4, 5)}
		}
		return Closure{Reason: malpracticeReason(p.Name)}
	}

	switch {
	case correct:
		return Rated{Rating: starsBetween(rng, 4, 5)}
	case p.GaveMedication():
		return Complaint{
			Rating: starsBetween(rng, 1, 3),
			Reason: fmt.Sprintf("Patient %s reported poor treatment.", p.Name),
		}
	default:
		return Rated{Rating: 1}
	}
}

func starsBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func malpracticeReason(name string) string {
	return fmt.Sprintf("%s had a severe condition.\n"+
		"Improper care led to complications.\n"+
		"Family sued — Clinic Closed.", name)
}
