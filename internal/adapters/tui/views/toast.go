package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
)

// toastExpiredMsg dismisses the toast with the matching id
type toastExpiredMsg struct {
	id int
}

// ToastModel shows one transient notification at a time. A newer toast
// replaces the current one and restarts the timer.
type ToastModel struct {
	duration time.Duration
	text     string
	isErr    bool
	id       int
}

// NewToastModel creates a toast model that hides notifications after d
func NewToastModel(d time.Duration) *ToastModel {
	return &ToastModel{duration: d}
}

// Show displays msg and schedules its dismissal
func (m *ToastModel) Show(msg ToastMsg) tea.Cmd {
	m.id++
	m.text = msg.Text
	m.isErr = msg.IsErr

	id := m.id
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update hides the toast when its timer fires. Stale timers are ignored.
func (m *ToastModel) Update(msg tea.Msg) bool {
	expired, ok := msg.(toastExpiredMsg)
	if !ok {
		return false
	}
	if expired.id == m.id {
		m.text = ""
	}
	return true
}

// Visible reports whether a toast is showing
func (m *ToastModel) Visible() bool {
	return m.text != ""
}

// View renders the toast, or nothing
func (m *ToastModel) View() string {
	if m.text == "" {
		return ""
	}
	if m.isErr {
		return styles.ToastError.Render(m.text)
	}
	return styles.Toast.Render(m.text)
}
