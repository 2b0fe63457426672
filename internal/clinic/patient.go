package clinic

import "math/rand/v2"

// Patient is the person at the desk for the current turn.
type Patient struct {
	Name        string
	Condition   Condition
	Personality Personality

	// Set by the receptionist before finishing care.
	Medication Medication
	Admitted   bool

	// Seconds the patient will wait, and what is left of it.
	AllowedTime   int
	RemainingTime int
}

// NewPatient creates a patient whose countdown starts full.
func NewPatient(name string, condition Condition, personality Personality) Patient {
	allowed := AllowedTime(personality)
	return Patient{
		Name:          name,
		Condition:     condition,
		Personality:   personality,
		AllowedTime:   allowed,
		RemainingTime: allowed,
	}
}

// GaveMedication reports whether any medication was chosen.
func (p Patient) GaveMedication() bool {
	return p.Medication != NoMedication
}

// Severe reports whether the patient's condition is severe.
func (p Patient) Severe() bool {
	return IsSevere(p.Condition)
}

// Elapse takes seconds off the countdown, never going below zero.
func (p *Patient) Elapse(seconds int) {
	if seconds <= 0 {
		return
	}
	p.RemainingTime -= seconds
	if p.RemainingTime < 0 {
		p.RemainingTime = 0
	}
}

// Expired reports whether the patient ran out of patience.
func (p Patient) Expired() bool {
	return p.RemainingTime <= 0
}

// Generator draws new patients. Every draw is independent of the
// previous ones, so repeats are allowed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. If rng is nil, uses shared default RNG.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = defaultRNG
	}
	return &Generator{rng: rng}
}

// Generate draws a name, condition and personality uniformly at random.
func (g *Generator) Generate() Patient {
	name := PatientName(g.rng)
	conditions := AllConditions()
	condition := conditions[g.rng.IntN(len(conditions))]
	personalities := AllPersonalities()
	personality := personalities[g.rng.IntN(len(personalities))]
	return NewPatient(name, condition, personality)
}
