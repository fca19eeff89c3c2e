package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

type pageFormMode int

const (
	pageFormCreate pageFormMode = iota
	pageFormRename
)

// PageFormModel creates or renames a page
type PageFormModel struct {
	ViewState
	state    *state.State
	form     *InputForm
	mode     pageFormMode
	parentID *int64
	page     *domain.Page
}

// NewPageFormModel creates a new page form
func NewPageFormModel(st *state.State) *PageFormModel {
	return &PageFormModel{
		state: st,
		form:  NewInputForm(NewInputField("Title:", domain.DefaultPageTitle, application.MaxTitleLength)),
	}
}

// SetCreate prepares the form for a new page under parentID
func (m *PageFormModel) SetCreate(parentID *int64) {
	m.mode = pageFormCreate
	m.parentID = parentID
	m.page = nil
	m.form.Fields[0].Required = false
	m.form.Reset()
	m.ClearMessage()
}

// SetRename prepares the form for renaming page
func (m *PageFormModel) SetRename(page domain.Page) {
	m.mode = pageFormRename
	m.parentID = nil
	m.page = &page
	m.form.Fields[0].Required = true
	m.form.Reset()
	m.form.SetValue(0, page.Title)
	m.ClearMessage()
}

// Init initializes the form
func (m *PageFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form
func (m *PageFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dialogErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return SwitchToWorkspaceMsg{} }
		case tea.KeyEnter:
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

func (m *PageFormModel) submit() tea.Cmd {
	title := m.form.Value(0)

	if m.mode == pageFormRename {
		page := *m.page
		return func() tea.Msg {
			err := m.state.UpdatePage(context.Background(), page.ID, domain.PagePatch{Title: &title})
			if err != nil {
				return dialogErrMsg{err}
			}
			return ActionDoneMsg{Message: fmt.Sprintf("Renamed to %q", title)}
		}
	}

	parentID := m.parentID
	return func() tea.Msg {
		ctx := context.Background()
		page, err := m.state.CreatePage(ctx, title, parentID)
		if err != nil {
			return dialogErrMsg{err}
		}
		if err := m.state.SelectPage(ctx, &page.ID); err != nil {
			return dialogErrMsg{err}
		}
		return ActionDoneMsg{Message: fmt.Sprintf("Created %q", page.Title), PageID: page.ID}
	}
}

// View renders the form
func (m *PageFormModel) View() string {
	var b strings.Builder

	switch m.mode {
	case pageFormRename:
		b.WriteString(styles.Title.Render("Rename Page"))
	default:
		b.WriteString(styles.Title.Render("New Page"))
	}
	b.WriteString("\n\n")

	if m.mode == pageFormCreate && m.parentID != nil {
		for _, p := range m.state.Pages() {
			if p.ID == *m.parentID {
				b.WriteString(RenderLabelValue("Inside", p.Title))
				b.WriteString("\n\n")
				break
			}
		}
	}

	b.WriteString(m.form.RenderFields())
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("save"))

	return styles.App.Render(b.String())
}
