package clinic

import (
	"fmt"
	"strings"
)

// Medication is a treatment the receptionist can hand to a patient.
// The zero value means nothing was given.
type Medication int

const (
	NoMedication Medication = iota
	Tylenol
	Antibiotics
	Inhaler
	Tamiflu
	BetaBlocker
	IVFluids
	AnxietySedative
	Triptan
	Epinephrine
	Bronchodilator
	InsulinDrip
	AntiInflammatory
)

var medicationNames = [...]string{
	NoMedication:     "none",
	Tylenol:          "Tylenol",
	Antibiotics:      "Antibiotics",
	Inhaler:          "Inhaler",
	Tamiflu:          "Tamiflu",
	BetaBlocker:      "Beta Blocker",
	IVFluids:         "IV Fluids",
	AnxietySedative:  "Anxiety Sedative",
	Triptan:          "Triptan",
	Epinephrine:      "Epinephrine",
	Bronchodilator:   "Bronchodilator",
	InsulinDrip:      "Insulin Drip",
	AntiInflammatory: "Anti-inflammatory",
}

// AllMedications returns every medication in the order the cabinet shows them.
func AllMedications() []Medication {
	return []Medication{
		Tylenol, Antibiotics, Inhaler, Tamiflu, BetaBlocker, IVFluids,
		AnxietySedative, Triptan, Epinephrine, Bronchodilator, InsulinDrip, AntiInflammatory,
	}
}

// String returns the display name of the medication.
func (m Medication) String() string {
	if m < 0 || int(m) >= len(medicationNames) {
		return fmt.Sprintf("Medication(%d)", int(m))
	}
	return medicationNames[m]
}

// ParseMedication parses a display name (case-insensitive) into a Medication.
// "none" and the empty string map to NoMedication.
func ParseMedication(s string) (Medication, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, medicationNames[NoMedication]) {
		return NoMedication, nil
	}
	for _, m := range AllMedications() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return NoMedication, fmt.Errorf("%w: %q", ErrUnknownMedication, s)
}
