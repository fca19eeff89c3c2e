package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

// DeleteModel asks for confirmation before deleting a page and its subtree
type DeleteModel struct {
	ConfirmationModel
	state       *state.State
	descendants int
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(st *state.State) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		state:             st,
	}
}

// SetPage sets the page to delete and counts the pages below it
func (m *DeleteModel) SetPage(page domain.Page) {
	m.SetTarget(&page)
	ids, _ := domain.Descendants(m.state.Pages(), page.ID)
	m.descendants = len(ids)
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dialogErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		_, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToWorkspaceMsg{} },
		)
		return m, cmd
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return dialogErrMsg{fmt.Errorf("no page selected")}
	}

	if err := m.state.DeletePage(context.Background(), m.Target.ID); err != nil {
		return dialogErrMsg{err}
	}

	return ActionDoneMsg{Message: fmt.Sprintf("Deleted %q", m.Target.Title)}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Page"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	if m.descendants > 0 {
		b.WriteString(styles.MutedText.Render(
			fmt.Sprintf("  Its %d subpage(s) and all blocks will be deleted too.", m.descendants)))
		b.WriteString("\n\n")
	}

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
