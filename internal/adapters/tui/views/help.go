package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToWorkspaceMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Opennoution Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Pages"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l", "Collapse / expand"))
	b.WriteString(helpLine("Enter", "Open page"))
	b.WriteString(helpLine("n / c", "New page / new subpage"))
	b.WriteString(helpLine("r / d", "Rename / delete page"))
	b.WriteString(helpLine("e / i", "Export / import backup"))
	b.WriteString(helpLine("Tab", "Switch to editor"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Blocks"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k", "Select block"))
	b.WriteString(helpLine("Enter / i", "Edit block"))
	b.WriteString(helpLine("o", "New block below"))
	b.WriteString(helpLine("J / K", "Move block down/up"))
	b.WriteString(helpLine("Space", "Toggle checklist item"))
	b.WriteString(helpLine("x", "Delete block"))
	b.WriteString(helpLine("t", "Edit page title"))
	b.WriteString(helpLine("y", "Copy block"))
	b.WriteString(helpLine("p", "Preview page in browser"))
	b.WriteString(helpLine("Ctrl+O", "Edit block in $EDITOR"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editing"))
	b.WriteString("\n")
	b.WriteString(helpLine("Enter", "Save and start a new block"))
	b.WriteString(helpLine("Alt+Enter", "Line break"))
	b.WriteString(helpLine("Esc", "Stop editing"))
	b.WriteString(helpLine("Backspace", "Delete an empty non-text block"))
	b.WriteString(helpLine("Ctrl+B / I / E", "Bold / italic / code"))
	b.WriteString(helpLine("Ctrl+U / G / S", "Underline / highlight / strike"))
	b.WriteString(helpLine("Ctrl+L", "Link"))
	b.WriteString(helpLine("Ctrl+X / Ctrl+Y", "Cut / copy word"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Slash commands"))
	b.WriteString("\n")
	for _, cmd := range domain.SlashCommands {
		b.WriteString(helpLine("/"+cmd.Shortcut, cmd.Label))
	}
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
