package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
)

// FatalModel replaces the workspace when the store cannot be opened
type FatalModel struct {
	ViewState
	err  error
	path string
}

// NewFatalModel creates a fatal error screen for the database at path
func NewFatalModel(err error, path string) *FatalModel {
	return &FatalModel{err: err, path: path}
}

// Init initializes the fatal screen
func (m *FatalModel) Init() tea.Cmd {
	return nil
}

// Update quits on any key
func (m *FatalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View renders the fatal screen
func (m *FatalModel) View() string {
	v := NewViewBuilder().
		Raw(styles.Fatal.Render("Opennoution could not start")).
		BlankLine().
		BlankLine().
		Line("The local database could not be opened or recreated.")
	if m.path != "" {
		v.Line(RenderLabelValue("Database", m.path))
	}
	if m.err != nil {
		v.Line(RenderLabelValue("Error", m.err.Error()))
	}
	return v.BlankLine().
		Muted("Check the log file for details. Press any key to quit.").
		String()
}
