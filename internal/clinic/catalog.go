// Package clinic holds the rules of a clinic shift: the condition and
// medication catalogs, patient generation, treatment evaluation and the
// day-by-day session state machine.
package clinic

import "errors"

var (
	ErrUnknownMedication  = errors.New("unknown medication")
	ErrUnknownCondition   = errors.New("unknown condition")
	ErrUnknownPersonality = errors.New("unknown personality")
)

// DefaultPatience is the allowed treatment time, in seconds, for a
// personality missing from the patience table.
const DefaultPatience = 30

var patience = map[Personality]int{
	Impatient: 20,
	Angry:     25,
	Nervous:   35,
	Scared:    30,
	Rude:      25,
	Quiet:     40,
	Sassy:     25,
	Calm:      45,
	Grateful:  50,
}

// AllowedTime returns how many seconds a patient with the given
// personality will wait before someone else has to step in.
func AllowedTime(p Personality) int {
	if t, ok := patience[p]; ok {
		return t
	}
	return DefaultPatience
}

var correctMedications = map[Condition][]Medication{
	Flu:                  {Tamiflu},
	Migraine:             {Triptan},
	AnxietyAttack:        {AnxietySedative},
	FoodPoisoning:        {IVFluids},
	BrokenHand:           {Tylenol},
	AsthmaFlare:          {Inhaler},
	MildAllergicReaction: {Epinephrine},
	BacterialInfection:   {Antibiotics},
	HighBloodPressure:    {BetaBlocker},
	Bronchitis:           {Bronchodilator},
	Diabetes:             {InsulinDrip},
	COPDFlare:            {Inhaler, Bronchodilator},
	Pneumonia:            {Antibiotics, IVFluids},
	UTIWithFever:         {Antibiotics, IVFluids},
	OsteoarthritisFlare:  {Tylenol, AntiInflammatory},

	// Severe: also need a specialist.
	HeartFailure:      {BetaBlocker},
	Sepsis:            {Antibiotics},
	AnaphylacticShock: {Epinephrine, IVFluids},
	KetoneAcidosis:    {InsulinDrip, IVFluids},
}

var severe = map[Condition]bool{
	HeartFailure:      true,
	Sepsis:            true,
	AnaphylacticShock: true,
	KetoneAcidosis:    true,
}

// CorrectMedications returns the medications that treat c. An unknown
// condition has none, so nothing given for it can be correct.
func CorrectMedications(c Condition) []Medication {
	meds := correctMedications[c]
	if len(meds) == 0 {
		return nil
	}
	out := make([]Medication, len(meds))
	copy(out, meds)
	return out
}

// IsCorrect reports whether m treats c.
func IsCorrect(c Condition, m Medication) bool {
	if m == NoMedication {
		return false
	}
	for _, ok := range correctMedications[c] {
		if ok == m {
			return true
		}
	}
	return false
}

// IsSevere reports whether c needs both the right medication and a
// specialist admission.
func IsSevere(c Condition) bool {
	return severe[c]
}

// SevereConditions returns the severe subset of AllConditions.
func SevereConditions() []Condition {
	var out []Condition
	for _, c := range AllConditions() {
		if severe[c] {
			out = append(out, c)
		}
	}
	return out
}
