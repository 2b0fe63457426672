package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/components"
	"github.com/mrsinham/doctoroncall/internal/clinic"
)

// EndingScreen shows how the run ended.
type EndingScreen struct {
	ending clinic.Ending
	done   bool
}

// NewEndingScreen creates the final screen
func NewEndingScreen(ending clinic.Ending) *EndingScreen {
	return &EndingScreen{ending: ending}
}

// Init implements tea.Model
func (s *EndingScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *EndingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		s.done = true
		return s, tea.Quit
	}
	return s, nil
}

// Lines returns the ending text.
func (s *EndingScreen) Lines() []string {
	rating := fmt.Sprintf("Final Rating: %.2f stars", s.ending.Average)
	switch s.ending.Verdict {
	case clinic.VerdictStaysOpen:
		return []string{"You have proven this clinic deserves to stay open!", rating, "Congratulations!"}
	case clinic.VerdictClosedComplaints:
		return []string{"The clinic received too many complaints.", rating, "The clinic has been closed."}
	default:
		return strings.Split(s.ending.Reason, "\n")
	}
}

// View implements tea.Model
func (s *EndingScreen) View() string {
	style := components.BadStyle
	if !s.ending.Verdict.Closed() {
		style = components.GoodStyle
	}

	var sb strings.Builder
	for _, line := range s.Lines() {
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(components.HintStyle.Render("Press any key to exit"))
	return lipgloss.NewStyle().Padding(2, 4).Render(sb.String())
}

// Done reports whether the player dismissed the screen
func (s *EndingScreen) Done() bool {
	return s.done
}
