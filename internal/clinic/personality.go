package clinic

import (
	"fmt"
	"strings"
)

// Personality drives how long a patient is willing to wait.
type Personality int

const (
	Calm Personality = iota + 1
	Nervous
	Scared
	Rude
	Angry
	Quiet
	Sassy
	Impatient
	Grateful
)

var personalityNames = map[Personality]string{
	Calm:      "Calm",
	Nervous:   "Nervous",
	Scared:    "Scared",
	Rude:      "Rude",
	Angry:     "Angry",
	Quiet:     "Quiet",
	Sassy:     "Sassy",
	Impatient: "Impatient",
	Grateful:  "Grateful",
}

// AllPersonalities returns every personality the generator can draw.
func AllPersonalities() []Personality {
	return []Personality{Calm, Nervous, Scared, Rude, Angry, Quiet, Sassy, Impatient, Grateful}
}

// String returns the display name of the personality.
func (p Personality) String() string {
	if name, ok := personalityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Personality(%d)", int(p))
}

// ParsePersonality parses a display name (case-insensitive) into a Personality.
func ParsePersonality(s string) (Personality, error) {
	s = strings.TrimSpace(s)
	for _, p := range AllPersonalities() {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPersonality, s)
}
