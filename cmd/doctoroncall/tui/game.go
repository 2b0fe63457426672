// Package tui is the interactive shift: a Bubble Tea program that walks
// the receptionist from the title screen through each day to an ending.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/screens"
	"github.com/mrsinham/doctoroncall/internal/clinic"
)

// Phase represents the current screen of the game.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseTreatment
	PhaseDaySummary
	PhaseEnding
	PhaseQuit
)

// SessionFactory starts the session once the player picks how to begin.
// resume is true when they chose to continue a saved shift.
type SessionFactory func(resume bool) *clinic.Session

// Options configure the game.
type Options struct {
	Rules clinic.Rules
	// ResumeDay is the saved day offered on the title screen, 0 for none.
	ResumeDay  int
	NewSession SessionFactory
}

// Game is the main orchestrator for the interactive shift.
type Game struct {
	opts    Options
	phase   Phase
	session *clinic.Session

	titleScreen     *screens.TitleScreen
	treatmentScreen *screens.TreatmentScreen
	summaryScreen   *screens.SummaryScreen
	endingScreen    *screens.EndingScreen

	width  int
	height int
}

// NewGame creates a game on its title screen.
func NewGame(opts Options) *Game {
	if opts.Rules.Days <= 0 || opts.Rules.PatientsPerDay <= 0 {
		opts.Rules = clinic.DefaultRules()
	}
	return &Game{
		opts:  opts,
		phase: PhaseTitle,
		titleScreen: screens.NewTitleScreen(
			opts.Rules.PatientsPerDay, opts.Rules.Days, opts.Rules.PassingAverage, opts.ResumeDay,
		),
	}
}

// Init implements tea.Model.
func (g *Game) Init() tea.Cmd {
	return g.titleScreen.Init()
}

// Update implements tea.Model.
func (g *Game) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		g.width = wsm.Width
		g.height = wsm.Height
	}

	switch g.phase {
	case PhaseTitle:
		return g.updateTitle(msg)
	case PhaseTreatment:
		return g.updateTreatment(msg)
	case PhaseDaySummary:
		return g.updateSummary(msg)
	case PhaseEnding:
		return g.updateEnding(msg)
	}

	return g, nil
}

// View implements tea.Model.
func (g *Game) View() string {
	switch g.phase {
	case PhaseTitle:
		return g.titleScreen.View()
	case PhaseTreatment:
		return g.treatmentScreen.View()
	case PhaseDaySummary:
		return g.summaryScreen.View()
	case PhaseEnding:
		return g.endingScreen.View()
	}
	return ""
}

func (g *Game) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := g.titleScreen.Update(msg)
	if ts, ok := model.(*screens.TitleScreen); ok {
		g.titleScreen = ts
	}

	if g.titleScreen.Cancelled() {
		g.phase = PhaseQuit
		return g, tea.Quit
	}
	if g.titleScreen.Done() {
		return g, g.Start(g.titleScreen.Choice() == screens.ChoiceResume)
	}
	return g, cmd
}

// Start leaves the title screen and calls in the first patient.
func (g *Game) Start(resume bool) tea.Cmd {
	g.session = g.opts.NewSession(resume)
	g.treatmentScreen = screens.NewTreatmentScreen(g.session)
	g.phase = PhaseTreatment
	return tea.Batch(g.resize(g.treatmentScreen), g.treatmentScreen.StartClock())
}

func (g *Game) updateTreatment(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := g.treatmentScreen.Update(msg)
	if ts, ok := model.(*screens.TreatmentScreen); ok {
		g.treatmentScreen = ts
	}

	if g.treatmentScreen.Quitting() {
		g.phase = PhaseQuit
		return g, cmd
	}

	switch g.session.Phase() {
	case clinic.PhaseDayComplete:
		g.summaryScreen = screens.NewSummaryScreen(g.session.LastDay())
		g.phase = PhaseDaySummary
	case clinic.PhaseEnded:
		g.endingScreen = screens.NewEndingScreen(g.session.Ending())
		g.phase = PhaseEnding
	}
	return g, cmd
}

func (g *Game) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := g.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		g.summaryScreen = ss
	}

	if g.summaryScreen.Cancelled() {
		g.phase = PhaseQuit
		return g, cmd
	}
	if g.summaryScreen.Done() {
		if err := g.session.ContinueDay(); err != nil {
			return g, nil
		}
		g.phase = PhaseTreatment
		return g, g.treatmentScreen.NextDay()
	}
	return g, cmd
}

func (g *Game) updateEnding(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := g.endingScreen.Update(msg)
	if es, ok := model.(*screens.EndingScreen); ok {
		g.endingScreen = es
	}
	if g.endingScreen.Done() {
		g.phase = PhaseQuit
	}
	return g, cmd
}

// resize replays the last window size to a freshly created screen.
func (g *Game) resize(m tea.Model) tea.Cmd {
	if g.width == 0 {
		return nil
	}
	_, cmd := m.Update(tea.WindowSizeMsg{Width: g.width, Height: g.height})
	return cmd
}

// Phase returns the current screen.
func (g *Game) Phase() Phase {
	return g.phase
}

// Session returns the running session, nil before the title screen is left.
func (g *Game) Session() *clinic.Session {
	return g.session
}

// Ending returns how the run ended and whether it did.
func (g *Game) Ending() (clinic.Ending, bool) {
	if g.session == nil || g.session.Phase() != clinic.PhaseEnded {
		return clinic.Ending{}, false
	}
	return g.session.Ending(), true
}

// Run starts the program in the alternate screen and blocks until the player quits.
func Run(opts Options) (*Game, error) {
	g := NewGame(opts)
	p := tea.NewProgram(g, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return g, nil
}
