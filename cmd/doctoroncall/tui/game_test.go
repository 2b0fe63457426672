package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/screens"
	"github.com/mrsinham/doctoroncall/internal/clinic"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func newTestGame(t *testing.T, rules clinic.Rules) *Game {
	t.Helper()
	g := NewGame(Options{
		Rules: rules,
		NewSession: func(bool) *clinic.Session {
			return clinic.NewSession(clinic.Options{Rules: rules, Rand: rand.New(rand.NewPCG(42, 42))})
		},
	})
	g.Start(false)
	return g
}

func send(g *Game, msgs ...tea.Msg) {
	for _, m := range msgs {
		g.Update(m)
	}
}

// giveCorrect moves the cursor to a correct medication and selects it.
func giveCorrect(t *testing.T, g *Game) {
	t.Helper()
	want := clinic.CorrectMedications(g.Session().Current().Condition)[0]
	for i := 0; i < len(clinic.AllMedications()) && g.treatmentScreen.Cursor() != want; i++ {
		send(g, keyDown)
	}
	if g.treatmentScreen.Cursor() != want {
		t.Fatalf("cursor never reached %s", want)
	}
	send(g, keyEnter)
}

func TestGame_TitleScreen(t *testing.T) {
	g := NewGame(Options{ResumeDay: 2})
	g.Init()
	send(g, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := g.View()
	for _, want := range []string{"Doctor On Call Simulator", "Treat 5 patients per day", "Resume day 2", "Start new shift"} {
		if !strings.Contains(view, want) {
			t.Errorf("title view missing %q", want)
		}
	}
	if g.Phase() != PhaseTitle || g.Session() != nil {
		t.Error("game should wait on the title screen")
	}

	fresh := NewGame(Options{})
	fresh.Init()
	send(fresh, tea.WindowSizeMsg{Width: 80, Height: 24})
	view = fresh.View()
	if !strings.Contains(view, "Start new shift") {
		t.Fatalf("title view missing %q", "Start new shift")
	}
	if strings.Contains(view, "Resume") {
		t.Error("resume should only be offered with saved progress")
	}
}

func TestGame_TitleShowsFractionalPassingAverage(t *testing.T) {
	g := NewGame(Options{Rules: clinic.Rules{Days: 3, PatientsPerDay: 5, PassingAverage: 3.5}})
	g.Init()
	send(g, tea.WindowSizeMsg{Width: 80, Height: 24})
	if view := g.View(); !strings.Contains(view, "rating of 3.5 stars") {
		t.Errorf("title view should show the passing average unrounded:\n%s", view)
	}
}

func TestGame_TitleQuit(t *testing.T) {
	g := NewGame(Options{})
	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if g.Phase() != PhaseQuit || cmd == nil {
		t.Errorf("phase = %v, cmd = %v", g.Phase(), cmd)
	}
}

func TestGame_SelectAndAdmit(t *testing.T) {
	g := newTestGame(t, clinic.DefaultRules())
	if g.Phase() != PhaseTreatment {
		t.Fatalf("phase = %v", g.Phase())
	}

	send(g, keyDown, keyDown, keyUp, keyEnter)
	meds := clinic.AllMedications()
	if got := g.Session().Current().Medication; got != meds[1] {
		t.Errorf("medication = %s, want %s", got, meds[1])
	}
	if msg := g.treatmentScreen.Message(); len(msg) != 1 || msg[0] != "Selected: "+meds[1].String() {
		t.Errorf("message = %q", msg)
	}

	send(g, keyRune('a'))
	name := g.Session().Current().Name
	if !g.Session().Current().Admitted {
		t.Error("patient should be admitted")
	}
	if msg := g.treatmentScreen.Message(); msg[0] != name+" has been admitted." {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(g.View(), "Day: 1") || !strings.Contains(g.View(), name) {
		t.Error("view should show the day and the patient")
	}
}

func TestGame_TickCountsDownToTimeout(t *testing.T) {
	g := newTestGame(t, clinic.DefaultRules())
	p := g.Session().Current()

	_, cmd := g.Update(screens.TickMsg{ID: 1})
	if cmd == nil {
		t.Error("tick should schedule the next one")
	}
	if got := g.Session().Current().RemainingTime; got != p.AllowedTime-1 {
		t.Fatalf("RemainingTime = %d, want %d", got, p.AllowedTime-1)
	}

	// A tick from another countdown is dropped.
	send(g, screens.TickMsg{ID: 99})
	if got := g.Session().Current().RemainingTime; got != p.AllowedTime-1 {
		t.Fatalf("stale tick changed RemainingTime to %d", got)
	}

	for i := 1; i < p.AllowedTime; i++ {
		send(g, screens.TickMsg{ID: 1})
	}
	if ratings := g.Session().Ratings(); len(ratings) != 1 || ratings[0] != 1 {
		t.Fatalf("ratings = %v, want one timeout star", ratings)
	}
	msg := g.treatmentScreen.Message()
	if len(msg) != 2 || msg[0] != "Time ran out treating "+p.Name+"." {
		t.Errorf("message = %q", msg)
	}

	// The next patient gets a countdown of their own.
	if g.treatmentScreen.Clock() != 2 {
		t.Errorf("clock = %d, want a new countdown", g.treatmentScreen.Clock())
	}
	next := g.Session().Current()
	if next.RemainingTime != next.AllowedTime {
		t.Errorf("next patient RemainingTime = %d, want %d", next.RemainingTime, next.AllowedTime)
	}
}

func TestGame_NextPatientGetsFullCountdown(t *testing.T) {
	g := newTestGame(t, clinic.DefaultRules())
	giveCorrect(t, g)
	if g.Session().Current().Severe() {
		send(g, keyRune('a'))
	}
	_, cmd := g.Update(keyRune('f'))
	if cmd == nil {
		t.Fatal("finishing care should start the next countdown")
	}
	if g.Phase() != PhaseTreatment || len(g.Session().Ratings()) != 1 {
		t.Fatalf("phase = %v ratings = %v", g.Phase(), g.Session().Ratings())
	}

	// The tick already in flight for the first patient is dropped.
	send(g, screens.TickMsg{ID: 1})
	p := g.Session().Current()
	if p.RemainingTime != p.AllowedTime {
		t.Fatalf("RemainingTime = %d, want %d", p.RemainingTime, p.AllowedTime)
	}

	send(g, screens.TickMsg{ID: g.treatmentScreen.Clock()})
	if got := g.Session().Current().RemainingTime; got != p.AllowedTime-1 {
		t.Errorf("RemainingTime = %d, want %d", got, p.AllowedTime-1)
	}
}

func TestGame_FullDayThenSummary(t *testing.T) {
	g := newTestGame(t, clinic.Rules{Days: 2, PatientsPerDay: 2, PassingAverage: 3})

	for i := 0; i < 2; i++ {
		giveCorrect(t, g)
		if g.Session().Current().Severe() {
			send(g, keyRune('a'))
		}
		send(g, keyRune('f'))
	}
	if g.Phase() != PhaseDaySummary {
		t.Fatalf("phase = %v, want day summary", g.Phase())
	}
	view := g.View()
	if !strings.Contains(view, "End of Day 1") || !strings.Contains(view, "Patient 2:") {
		t.Errorf("summary view = %q", view)
	}

	// Ticks do nothing while the summary is up.
	send(g, screens.TickMsg{ID: 1})

	_, cmd := g.Update(keyRune('x'))
	if g.Phase() != PhaseTreatment || g.Session().Day() != 2 {
		t.Fatalf("phase = %v day = %d", g.Phase(), g.Session().Day())
	}
	if cmd == nil {
		t.Error("continuing should restart the clock")
	}

	if msg := g.treatmentScreen.Message(); len(msg) != 0 {
		t.Errorf("message from the previous day still shown: %q", msg)
	}

	// The old countdowns no longer apply.
	clock := g.treatmentScreen.Clock()
	before := g.Session().Current().RemainingTime
	for id := 1; id < clock; id++ {
		send(g, screens.TickMsg{ID: id})
	}
	if g.Session().Current().RemainingTime != before {
		t.Error("tick from the previous day was applied")
	}
	send(g, screens.TickMsg{ID: clock})
	if g.Session().Current().RemainingTime != before-1 {
		t.Error("tick from the new countdown was not applied")
	}
}

func TestGame_StaysOpenEnding(t *testing.T) {
	g := newTestGame(t, clinic.Rules{Days: 1, PatientsPerDay: 2, PassingAverage: 3})
	for i := 0; i < 2; i++ {
		giveCorrect(t, g)
		if g.Session().Current().Severe() {
			send(g, keyRune('a'))
		}
		send(g, keyRune('f'))
	}
	if g.Phase() != PhaseEnding {
		t.Fatalf("phase = %v, want ending", g.Phase())
	}
	e, ok := g.Ending()
	if !ok || e.Verdict != clinic.VerdictStaysOpen {
		t.Fatalf("ending = %+v, %v", e, ok)
	}
	view := g.View()
	if !strings.Contains(view, "deserves to stay open") || !strings.Contains(view, "Congratulations!") {
		t.Errorf("ending view = %q", view)
	}

	_, cmd := g.Update(keyRune('x'))
	if g.Phase() != PhaseQuit || cmd == nil {
		t.Error("any key should leave the ending screen")
	}
}

func TestGame_ComplaintsEnding(t *testing.T) {
	g := newTestGame(t, clinic.Rules{Days: 1, PatientsPerDay: 3, PassingAverage: 3})
	for g.Phase() == PhaseTreatment {
		if g.Session().Current().Severe() {
			for g.Phase() == PhaseTreatment && len(g.Session().Ratings()) < 3 && g.Session().Current().Severe() {
				send(g, screens.TickMsg{ID: g.treatmentScreen.Clock()})
			}
			continue
		}
		send(g, keyRune('f'))
	}
	e, ok := g.Ending()
	if !ok || e.Verdict != clinic.VerdictClosedComplaints {
		t.Fatalf("ending = %+v, %v", e, ok)
	}
	if !strings.Contains(g.View(), "too many complaints") {
		t.Errorf("ending view = %q", g.View())
	}
}

func TestGame_QuitFromDesk(t *testing.T) {
	g := newTestGame(t, clinic.DefaultRules())
	_, cmd := g.Update(keyRune('q'))
	if g.Phase() != PhaseQuit || cmd == nil {
		t.Errorf("phase = %v, cmd = %v", g.Phase(), cmd)
	}
	if _, ok := g.Ending(); ok {
		t.Error("quitting mid-shift is not an ending")
	}
}

func TestEndingScreen_Malpractice(t *testing.T) {
	s := screens.NewEndingScreen(clinic.Ending{
		Verdict: clinic.VerdictMalpractice,
		Reason:  "Zoe had a severe condition.\nImproper care led to complications.\nFamily sued — Clinic Closed.",
	})
	lines := s.Lines()
	if len(lines) != 3 || lines[0] != "Zoe had a severe condition." {
		t.Errorf("lines = %q", lines)
	}
}
