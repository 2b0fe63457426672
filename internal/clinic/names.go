package clinic

import (
	"math/rand/v2"
	"time"
)

// Package-level default RNG to avoid allocations when rng is nil
var defaultRNG = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

// FirstNames is the waiting-room roster patients are named from.
var FirstNames = []string{
	"John", "Lily", "Mark", "Anna", "Paul", "Sara", "David", "Emily",
	"Christopher", "Ava", "Daniel", "Sophia", "Matthew", "Chloe", "Kyle",
	"Ella", "Lucas", "Grace", "Nathan", "Zoe", "Ryan", "Mia", "Ethan",
	"Olivia", "Noah",
}

// PatientName picks a first name uniformly from FirstNames.
// If rng is nil, uses shared default RNG.
func PatientName(rng *rand.Rand) string {
	if rng == nil {
		rng = defaultRNG
	}
	return FirstNames[rng.IntN(len(FirstNames))]
}
