package clinic

import (
	"math/rand/v2"
	"testing"
)

func TestNewPatient_TreatmentTimeFromPersonality(t *testing.T) {
	for _, personality := range AllPersonalities() {
		p := NewPatient("Test", Flu, personality)
		if p.AllowedTime != AllowedTime(personality) {
			t.Errorf("personality %s: AllowedTime = %d, want %d", personality, p.AllowedTime, AllowedTime(personality))
		}
	}
}

func TestNewPatient_RemainingTimeStartsFull(t *testing.T) {
	p := NewPatient("John", Flu, Calm)
	if p.RemainingTime != p.AllowedTime {
		t.Errorf("RemainingTime = %d, want %d", p.RemainingTime, p.AllowedTime)
	}
	if p.GaveMedication() || p.Admitted {
		t.Error("new patient should have no medication and not be admitted")
	}
}

func TestPatient_ElapseFloorsAtZero(t *testing.T) {
	p := NewPatient("Mia", Migraine, Impatient)
	p.Elapse(5)
	if p.RemainingTime != 15 {
		t.Errorf("RemainingTime = %d, want 15", p.RemainingTime)
	}
	if p.Expired() {
		t.Error("patient should not be expired yet")
	}
	p.Elapse(100)
	if p.RemainingTime != 0 {
		t.Errorf("RemainingTime = %d, want 0", p.RemainingTime)
	}
	if !p.Expired() {
		t.Error("patient should be expired")
	}
	p.Elapse(-3)
	if p.RemainingTime != 0 {
		t.Errorf("negative elapse changed RemainingTime to %d", p.RemainingTime)
	}
}

func TestGenerator_DrawsFromCatalogs(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(42, 42)))
	names := map[string]bool{}
	for _, n := range FirstNames {
		names[n] = true
	}

	for i := 0; i < 500; i++ {
		p := gen.Generate()
		if !names[p.Name] {
			t.Fatalf("generated name %q is not in the roster", p.Name)
		}
		if len(CorrectMedications(p.Condition)) == 0 {
			t.Fatalf("generated condition %s has no treatment", p.Condition)
		}
		if p.AllowedTime != AllowedTime(p.Personality) {
			t.Fatalf("generated AllowedTime = %d, want %d", p.AllowedTime, AllowedTime(p.Personality))
		}
		if p.RemainingTime != p.AllowedTime {
			t.Fatalf("generated RemainingTime = %d, want %d", p.RemainingTime, p.AllowedTime)
		}
	}
}

func TestGenerator_CoversEveryCondition(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewPCG(7, 7)))
	seen := map[Condition]bool{}
	for i := 0; i < 2000; i++ {
		seen[gen.Generate().Condition] = true
	}
	if len(seen) != len(AllConditions()) {
		t.Errorf("saw %d distinct conditions in 2000 draws, want %d", len(seen), len(AllConditions()))
	}
}

func TestGenerator_Reproducible(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	b := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 20; i++ {
		pa, pb := a.Generate(), b.Generate()
		if pa != pb {
			t.Fatalf("draw %d differs: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestGenerator_NilRNG(t *testing.T) {
	p := NewGenerator(nil).Generate()
	if p.Name == "" {
		t.Error("nil rng generator should still produce a patient")
	}
}
