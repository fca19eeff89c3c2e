package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

const (
	fieldName = iota
	fieldEmail
	fieldOccupation
	fieldPurpose
)

// OnboardingDoneMsg is sent once the profile has been saved
type OnboardingDoneMsg struct {
	Name string
}

// OnboardingModel collects the user profile on first run
type OnboardingModel struct {
	ViewState
	state *state.State
	form  *InputForm
}

// NewOnboardingModel creates the first-run form
func NewOnboardingModel(st *state.State) *OnboardingModel {
	return &OnboardingModel{
		state: st,
		form: NewInputForm(
			RequiredField("Name:", "Ada Lovelace", 200),
			NewInputField("Email:", "ada@example.com", 200),
			NewInputField("Occupation:", "Engineer", 200),
			NewInputField("What will you use it for?", "Notes, journaling, planning", 500),
		),
	}
}

// Init initializes the form
func (m *OnboardingModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *OnboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dialogErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.form.FocusedField < len(m.form.Fields)-1 {
				return m, m.form.SetFocus(m.form.FocusedField + 1)
			}
			if err := m.form.Check(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *OnboardingModel) submit() tea.Cmd {
	profile := domain.UserProfile{
		Name:       m.form.Value(fieldName),
		Email:      m.form.Value(fieldEmail),
		Occupation: m.form.Value(fieldOccupation),
		Purpose:    m.form.Value(fieldPurpose),
	}
	return func() tea.Msg {
		if err := m.state.CompleteOnboarding(context.Background(), profile); err != nil {
			return dialogErrMsg{err}
		}
		return OnboardingDoneMsg{Name: profile.Name}
	}
}

// View renders the form
func (m *OnboardingModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Welcome to Opennoution"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Tell us a little about yourself to get started."))
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderFields())
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("continue"))

	return styles.App.Render(b.String())
}
