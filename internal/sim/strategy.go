// Package sim plays whole runs without a terminal, using a fixed
// receptionist strategy for every patient.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mrsinham/doctoroncall/internal/clinic"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Plan is what the receptionist does for one patient.
type Plan struct {
	Medication clinic.Medication
	Admit      bool
	// Idle lets the countdown run out instead of finishing care.
	Idle bool
}

// Strategy decides how each patient is treated.
type Strategy interface {
	Name() string
	Treat(p clinic.Patient) Plan
}

// Perfect always gives a correct medication and admits severe patients.
type Perfect struct{}

func (Perfect) Name() string { return "perfect" }

func (Perfect) Treat(p clinic.Patient) Plan {
	return Plan{Medication: firstCorrect(p.Condition), Admit: p.Severe()}
}

// Careless always gives a wrong medication and never admits anyone.
type Careless struct{}

func (Careless) Name() string { return "careless" }

func (Careless) Treat(p clinic.Patient) Plan {
	for _, m := range clinic.AllMedications() {
		if !clinic.IsCorrect(p.Condition, m) {
			return Plan{Medication: m}
		}
	}
	return Plan{}
}

// Cautious treats ordinary cases correctly and lets severe ones time out
// so a senior doctor takes over.
type Cautious struct{}

func (Cautious) Name() string { return "cautious" }

func (Cautious) Treat(p clinic.Patient) Plan {
	if p.Severe() {
		return Plan{Idle: true}
	}
	return Plan{Medication: firstCorrect(p.Condition)}
}

// Idle never does anything.
type Idle struct{}

func (Idle) Name() string { return "idle" }

func (Idle) Treat(clinic.Patient) Plan { return Plan{Idle: true} }

// Random picks any medication, or none, and admits at random.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy. A nil rng uses a time-seeded source.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Random{rng: rng}
}

func (*Random) Name() string { return "random" }

func (r *Random) Treat(clinic.Patient) Plan {
	meds := clinic.AllMedications()
	pick := r.rng.IntN(len(meds) + 1)
	plan := Plan{Admit: r.rng.IntN(2) == 0}
	if pick < len(meds) {
		plan.Medication = meds[pick]
	}
	return plan
}

// StrategyNames lists the built-in strategies.
func StrategyNames() []string {
	return []string{"perfect", "careless", "cautious", "idle", "random"}
}

// ParseStrategy returns the built-in strategy called name. rng is only
// used by the random strategy.
func ParseStrategy(name string, rng *rand.Rand) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "perfect":
		return Perfect{}, nil
	case "careless":
		return Careless{}, nil
	case "cautious":
		return Cautious{}, nil
	case "idle":
		return Idle{}, nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("%w %q, valid strategies: %v", ErrUnknownStrategy, name, StrategyNames())
	}
}

func firstCorrect(c clinic.Condition) clinic.Medication {
	if meds := clinic.CorrectMedications(c); len(meds) > 0 {
		return meds[0]
	}
	return clinic.NoMedication
}
