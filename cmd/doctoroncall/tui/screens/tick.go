package screens

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is one second of the patient's countdown. ID ties it to the
// countdown that scheduled it so stale ticks are dropped.
type TickMsg struct {
	ID   int
	Time time.Time
}

func tickCmd(id int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
