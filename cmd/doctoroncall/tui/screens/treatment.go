package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/components"
	"github.com/mrsinham/doctoroncall/internal/clinic"
)

var (
	medicationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	givenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			PaddingLeft(2)

	medsPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// TreatmentScreen is the desk: the current patient, their countdown and
// the medication cabinet.
type TreatmentScreen struct {
	session  *clinic.Session
	meds     []clinic.Medication
	cursor   int
	keys     treatmentKeys
	help     help.Model
	bar      progress.Model
	message  *components.MessageBox
	tickID   int
	width    int
	height   int
	quitting bool
}

// NewTreatmentScreen creates the desk for session.
func NewTreatmentScreen(session *clinic.Session) *TreatmentScreen {
	return &TreatmentScreen{
		session: session,
		meds:    clinic.AllMedications(),
		keys:    newTreatmentKeys(),
		help:    help.New(),
		bar:     progress.New(progress.WithScaledGradient("#FF5F5F", "#5FAFFF"), progress.WithoutPercentage()),
		message: components.NewMessageBox(),
	}
}

// Init implements tea.Model
func (s *TreatmentScreen) Init() tea.Cmd {
	return s.StartClock()
}

// StartClock begins a new countdown chain. Ticks from earlier chains are ignored.
func (s *TreatmentScreen) StartClock() tea.Cmd {
	s.tickID++
	return tickCmd(s.tickID)
}

// Update implements tea.Model
func (s *TreatmentScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.bar.Width = min(40, max(10, msg.Width/3))
		s.message.SetWidth(min(70, msg.Width-4))
		s.help.Width = msg.Width

	case TickMsg:
		if msg.ID != s.tickID || s.session.Phase() != clinic.PhasePlaying {
			return s, nil
		}
		r, err := s.session.Elapse(1)
		if err != nil {
			return s, nil
		}
		if r != nil {
			return s, s.showReview(*r)
		}
		return s, tickCmd(s.tickID)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *TreatmentScreen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		s.quitting = true
		return s, tea.Quit

	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}

	case key.Matches(msg, s.keys.Down):
		if s.cursor < len(s.meds)-1 {
			s.cursor++
		}

	case key.Matches(msg, s.keys.Select):
		med := s.meds[s.cursor]
		if err := s.session.SelectMedication(med); err == nil {
			s.message.Set(fmt.Sprintf("Selected: %s", med))
		}

	case key.Matches(msg, s.keys.Admit):
		if err := s.session.Admit(); err == nil {
			s.message.Set(fmt.Sprintf("%s has been admitted.", s.session.Current().Name))
		}

	case key.Matches(msg, s.keys.Finish):
		r, err := s.session.FinishCare()
		if errors.Is(err, clinic.ErrNotPlaying) {
			return s, nil
		}
		return s, s.showReview(r)
	}

	return s, nil
}

// showReview reports r and, when the next patient is already at the desk,
// starts their countdown.
func (s *TreatmentScreen) showReview(r clinic.Review) tea.Cmd {
	s.cursor = 0
	s.message.Set(r.Status()...)
	if s.session.Phase() != clinic.PhasePlaying {
		return nil
	}
	return s.StartClock()
}

// NextDay clears the previous day's messages and starts the countdown
// for the first patient of the day.
func (s *TreatmentScreen) NextDay() tea.Cmd {
	s.cursor = 0
	s.message.Clear()
	return s.StartClock()
}

// View implements tea.Model
func (s *TreatmentScreen) View() string {
	if s.quitting {
		return "Shift abandoned. Progress is saved.\n"
	}

	p := s.session.Current()
	var left strings.Builder
	left.WriteString(components.TitleStyle.Render(fmt.Sprintf("Day: %d", s.session.Day())))
	left.WriteString("\n")
	left.WriteString(row("Patient", p.Name))
	left.WriteString(row("Condition", p.Condition.String()))
	left.WriteString(row("Personality", p.Personality.String()))
	left.WriteString(row("Seen today", fmt.Sprintf("%d/%d", s.session.TreatedToday(), s.session.Rules().PatientsPerDay)))
	left.WriteString("\n")

	ratio := 0.0
	if p.AllowedTime > 0 {
		ratio = float64(p.RemainingTime) / float64(p.AllowedTime)
	}
	left.WriteString(components.LabelStyle.Render("Time Left"))
	left.WriteString(components.TimeStyle.Render(fmt.Sprintf("%ds", p.RemainingTime)))
	left.WriteString("\n")
	left.WriteString(s.bar.ViewAs(ratio))
	left.WriteString("\n")
	if p.Admitted {
		left.WriteString("\n")
		left.WriteString(components.GoodStyle.Render("Admitted to specialist"))
		left.WriteString("\n")
	}

	var cabinet strings.Builder
	for i, m := range s.meds {
		switch {
		case i == s.cursor:
			cabinet.WriteString(cursorStyle.Render("> " + m.String()))
		case m == p.Medication:
			cabinet.WriteString(givenStyle.Render("✓ " + m.String()))
		default:
			cabinet.WriteString(medicationStyle.Render(m.String()))
		}
		cabinet.WriteString("\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(40).Render(left.String()),
		medsPanelStyle.Render(strings.TrimRight(cabinet.String(), "\n")),
	)

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n\n")
	if box := s.message.View(); box != "" {
		sb.WriteString(box)
		sb.WriteString("\n")
	}
	sb.WriteString(s.help.View(s.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func row(label, value string) string {
	return components.LabelStyle.Render(label) + components.ValueStyle.Render(value) + "\n"
}

// Quitting reports whether the player left the desk
func (s *TreatmentScreen) Quitting() bool {
	return s.quitting
}

// Message returns the lines shown in the message box
func (s *TreatmentScreen) Message() []string {
	return s.message.Lines()
}

// Clock returns the id of the running countdown
func (s *TreatmentScreen) Clock() int {
	return s.tickID
}

// Cursor returns the highlighted medication
func (s *TreatmentScreen) Cursor() clinic.Medication {
	return s.meds[s.cursor]
}
