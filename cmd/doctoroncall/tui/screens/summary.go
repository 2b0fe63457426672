package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/doctoroncall/cmd/doctoroncall/tui/components"
	"github.com/mrsinham/doctoroncall/internal/clinic"
)

// SummaryScreen closes a day with its ratings.
type SummaryScreen struct {
	summary   clinic.DaySummary
	done      bool
	cancelled bool
}

// NewSummaryScreen creates the end-of-day screen
func NewSummaryScreen(summary clinic.DaySummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q":
			s.cancelled = true
			return s, tea.Quit
		default:
			s.done = true
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	var sb strings.Builder
	sb.WriteString(components.BadStyle.Render(fmt.Sprintf("End of Day %d", s.summary.Day)))
	sb.WriteString("\n\n")
	sb.WriteString(components.ValueStyle.Render(fmt.Sprintf("Average Rating: %.2f stars", s.summary.Average)))
	sb.WriteString("\n\n")
	for i, stars := range s.summary.Ratings {
		sb.WriteString(fmt.Sprintf("Patient %d: %s  %d stars\n", i+1, components.Stars(stars), stars))
	}
	sb.WriteString("\n")
	sb.WriteString(components.HintStyle.Render("Press any key to start the next day"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Done reports whether the player moved on
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled reports whether the player quit
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}
