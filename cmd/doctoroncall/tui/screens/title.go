package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/components"
)

// Title screen choices.
const (
	ChoiceNew    = "new"
	ChoiceResume = "resume"
	ChoiceQuit   = "quit"
)

var titleLines = []string{
	"Treat %d patients per day",
	"Personalities affect treatment time. Stay sharp!",
	"Reach Day %d with a rating of %g stars or greater",
	"to prove your clinic deserves to stay open.",
}

// TitleScreen introduces the game and asks how to start.
type TitleScreen struct {
	form      *huh.Form
	choice    string
	intro     []string
	width     int
	height    int
	done      bool
	cancelled bool
}

// NewTitleScreen creates the title screen. resumeDay > 0 offers to resume
// a saved shift on that day.
func NewTitleScreen(patientsPerDay, days int, passing float64, resumeDay int) *TitleScreen {
	s := &TitleScreen{
		choice: ChoiceNew,
		intro: []string{
			fmt.Sprintf(titleLines[0], patientsPerDay),
			titleLines[1],
			fmt.Sprintf(titleLines[2], days, passing),
			titleLines[3],
		},
	}

	options := []huh.Option[string]{huh.NewOption("Start new shift", ChoiceNew)}
	if resumeDay > 0 {
		options = append(options, huh.NewOption(fmt.Sprintf("Resume day %d", resumeDay), ChoiceResume))
		s.choice = ChoiceResume
	}
	options = append(options, huh.NewOption("Quit", ChoiceQuit))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("start").
				Options(options...).
				Value(&s.choice),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *TitleScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *TitleScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
		if s.choice == ChoiceQuit {
			s.cancelled = true
			return s, tea.Quit
		}
	}

	return s, cmd
}

// View implements tea.Model
func (s *TitleScreen) View() string {
	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render("Doctor On Call Simulator"))
	sb.WriteString("\n")
	sb.WriteString(components.SubtitleStyle.Render(strings.Join(s.intro, "\n")))
	sb.WriteString("\n")
	sb.WriteString(s.form.View())
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Done reports whether a choice was made
func (s *TitleScreen) Done() bool {
	return s.done
}

// Cancelled reports whether the player quit
func (s *TitleScreen) Cancelled() bool {
	return s.cancelled
}

// Choice returns the selected option
func (s *TitleScreen) Choice() string {
	return s.choice
}
