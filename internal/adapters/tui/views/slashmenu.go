package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/domain"
)

// SlashMenuKeyMap defines key bindings for the slash menu
type SlashMenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

var SlashMenuKeys = SlashMenuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "tab"),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// SlashMenuModel is the block type menu opened by typing "/" at the start
// of a block
type SlashMenuModel struct {
	open    bool
	query   string
	matches []domain.SlashCommand
	cursor  int
}

// Sync opens, filters or closes the menu from the current block content
func (m *SlashMenuModel) Sync(content string) {
	query, ok := domain.SlashQuery(content)
	if !ok {
		m.Close()
		return
	}
	if !m.open || query != m.query {
		m.cursor = 0
	}
	m.open = true
	m.query = query
	m.matches = domain.FilterSlashCommands(query)
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

// Close hides the menu
func (m *SlashMenuModel) Close() {
	m.open = false
	m.query = ""
	m.matches = nil
	m.cursor = 0
}

// IsOpen reports whether the menu is visible
func (m *SlashMenuModel) IsOpen() bool {
	return m.open
}

// Up moves the highlight up, wrapping around
func (m *SlashMenuModel) Up() {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + len(m.matches)) % len(m.matches)
}

// Down moves the highlight down, wrapping around
func (m *SlashMenuModel) Down() {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % len(m.matches)
}

// Selected returns the highlighted command
func (m *SlashMenuModel) Selected() (domain.SlashCommand, bool) {
	if !m.open || len(m.matches) == 0 {
		return domain.SlashCommand{}, false
	}
	return m.matches[m.cursor], true
}

// View renders the menu
func (m *SlashMenuModel) View() string {
	if !m.open {
		return ""
	}

	var b strings.Builder
	if len(m.matches) == 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("No block type matches %q", m.query)))
		return styles.Menu.Render(b.String())
	}

	for i, cmd := range m.matches {
		line := fmt.Sprintf("%-10s %s", cmd.Label, styles.MutedText.Render("/"+cmd.Shortcut))
		if i == m.cursor {
			line = styles.MenuSelected.Render(fmt.Sprintf("%-10s /%s", cmd.Label, cmd.Shortcut))
		}
		b.WriteString(line)
		if i < len(m.matches)-1 {
			b.WriteString("\n")
		}
	}
	return styles.Menu.Render(b.String())
}
