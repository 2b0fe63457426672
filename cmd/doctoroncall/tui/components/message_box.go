package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	messageBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Foreground(lipgloss.Color("33")).
			Padding(0, 2).
			Width(60)
)

// MessageBox displays the receptionist's latest status lines.
type MessageBox struct {
	lines []string
	width int
}

// NewMessageBox creates an empty message box
func NewMessageBox() *MessageBox {
	return &MessageBox{width: 60}
}

// Set replaces the displayed lines
func (m *MessageBox) Set(lines ...string) {
	m.lines = append([]string(nil), lines...)
}

// Clear empties the box
func (m *MessageBox) Clear() {
	m.lines = nil
}

// Lines returns what the box currently shows
func (m *MessageBox) Lines() []string {
	return append([]string(nil), m.lines...)
}

// SetWidth updates the box width
func (m *MessageBox) SetWidth(width int) {
	if width > 20 {
		m.width = width
	}
}

// View renders the box, or nothing when it is empty
func (m *MessageBox) View() string {
	if len(m.lines) == 0 {
		return ""
	}
	style := messageBoxStyle.Width(m.width - 4) // Compute locally, don't mutate global
	return style.Render(strings.Join(m.lines, "\n"))
}
