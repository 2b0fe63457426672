package clinic

import (
	"fmt"
	"strings"
)

// Condition is the complaint a patient walks in with.
type Condition int

const (
	Flu Condition = iota + 1
	Migraine
	AnxietyAttack
	FoodPoisoning
	BrokenHand
	AsthmaFlare
	HeartFailure
	Sepsis
	MildAllergicReaction
	BacterialInfection
	HighBloodPressure
	Bronchitis
	Diabetes
	AnaphylacticShock
	KetoneAcidosis
	COPDFlare
	Pneumonia
	UTIWithFever
	OsteoarthritisFlare
)

var conditionNames = map[Condition]string{
	Flu:                  "Flu",
	Migraine:             "Migraine",
	AnxietyAttack:        "Anxiety Attack",
	FoodPoisoning:        "Food Poisoning",
	BrokenHand:           "Broken Hand",
	AsthmaFlare:          "Asthma Flare",
	HeartFailure:         "Heart Failure",
	Sepsis:               "Sepsis",
	MildAllergicReaction: "Mild Allergic Reaction",
	BacterialInfection:   "Bacterial Infection",
	HighBloodPressure:    "High Blood Pressure",
	Bronchitis:           "Bronchitis",
	Diabetes:             "Diabetes",
	AnaphylacticShock:    "Anaphylactic Shock",
	KetoneAcidosis:       "Ketone Acidosis",
	COPDFlare:            "COPD Flare",
	Pneumonia:            "Pneumonia",
	UTIWithFever:         "UTI with Fever",
	OsteoarthritisFlare:  "Osteoarthritis Flare",
}

// AllConditions returns every condition the generator can draw.
func AllConditions() []Condition {
	return []Condition{
		Flu, Migraine, AnxietyAttack, FoodPoisoning, BrokenHand, AsthmaFlare,
		HeartFailure, Sepsis, MildAllergicReaction, BacterialInfection, HighBloodPressure,
		Bronchitis, Diabetes, AnaphylacticShock, KetoneAcidosis, COPDFlare,
		Pneumonia, UTIWithFever, OsteoarthritisFlare,
	}
}

// String returns the display name of the condition.
func (c Condition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// ParseCondition parses a display name (case-insensitive) into a Condition.
func ParseCondition(s string) (Condition, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllConditions() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCondition, s)
}
