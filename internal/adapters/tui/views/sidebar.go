package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

// SidebarKeyMap defines key bindings for the page tree
type SidebarKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	New      key.Binding
	NewChild key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Export   key.Binding
	Import   key.Binding
	Editor   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var SidebarKeys = SidebarKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new page"),
	),
	NewChild: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "new subpage"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Editor: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "editor"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SidebarModel shows the page hierarchy as a collapsible tree
type SidebarModel struct {
	ViewState
	state     *state.State
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	expanded  map[int64]bool
	cursor    int
	focused   bool
}

// NewSidebarModel creates a new sidebar
func NewSidebarModel(st *state.State) *SidebarModel {
	return &SidebarModel{
		state:    st,
		expanded: make(map[int64]bool),
		focused:  true,
	}
}

// Init initializes the sidebar
func (m *SidebarModel) Init() tea.Cmd {
	m.Reload()
	return nil
}

// Focus gives the sidebar keyboard focus
func (m *SidebarModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus
func (m *SidebarModel) Blur() {
	m.focused = false
}

// Reload rebuilds the tree from the shared state, keeping the cursor on the
// same page when it still exists
func (m *SidebarModel) Reload() {
	var selectedID int64
	if node := m.selectedNode(); node != nil {
		selectedID = node.Page.ID
	}

	m.root = domain.BuildTree(m.state.Pages(), m.expanded)
	m.refreshFlatNodes()

	if selectedID != 0 {
		m.selectPage(selectedID)
	}
}

// RevealPage expands the ancestors of id and moves the cursor onto it
func (m *SidebarModel) RevealPage(id int64) {
	if m.root == nil {
		return
	}
	node := m.root.Find(id)
	if node == nil {
		return
	}
	for p := node.Parent; p != nil && !p.IsRoot(); p = p.Parent {
		p.Expand()
		m.expanded[p.Page.ID] = true
	}
	m.refreshFlatNodes()
	m.selectPage(id)
}

// Update handles messages for the sidebar
func (m *SidebarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StateChangedMsg, PageSelectedMsg:
		m.Reload()
		if sel, ok := msg.(PageSelectedMsg); ok {
			m.RevealPage(sel.PageID)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *SidebarModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SidebarKeys.Quit):
		return tea.Quit

	case key.Matches(msg, SidebarKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, SidebarKeys.Down):
		if m.cursor < len(m.flatNodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, SidebarKeys.Left):
		if node := m.selectedNode(); node != nil {
			if node.IsExpanded && node.HasChildren() {
				node.Collapse()
				delete(m.expanded, node.Page.ID)
				m.refreshFlatNodes()
			} else if node.Parent != nil && !node.Parent.IsRoot() {
				// Move to parent
				m.selectPage(node.Parent.Page.ID)
			}
		}

	case key.Matches(msg, SidebarKeys.Right):
		if node := m.selectedNode(); node != nil && node.HasChildren() && !node.IsExpanded {
			node.Expand()
			m.expanded[node.Page.ID] = true
			m.refreshFlatNodes()
		}

	case key.Matches(msg, SidebarKeys.Enter):
		if node := m.selectedNode(); node != nil {
			return m.openPage(node.Page.ID)
		}

	case key.Matches(msg, SidebarKeys.New):
		return func() tea.Msg { return SwitchToCreatePageMsg{} }

	case key.Matches(msg, SidebarKeys.NewChild):
		if node := m.selectedNode(); node != nil {
			parentID := node.Page.ID
			return func() tea.Msg { return SwitchToCreatePageMsg{ParentID: &parentID} }
		}

	case key.Matches(msg, SidebarKeys.Rename):
		if node := m.selectedNode(); node != nil {
			page := *node.Page
			return func() tea.Msg { return SwitchToRenamePageMsg{Page: page} }
		}

	case key.Matches(msg, SidebarKeys.Delete):
		if node := m.selectedNode(); node != nil {
			page := *node.Page
			return func() tea.Msg { return SwitchToDeletePageMsg{Page: page} }
		}

	case key.Matches(msg, SidebarKeys.Export):
		return func() tea.Msg { return SwitchToExportMsg{} }

	case key.Matches(msg, SidebarKeys.Import):
		return func() tea.Msg { return SwitchToImportMsg{} }

	case key.Matches(msg, SidebarKeys.Editor):
		return func() tea.Msg { return FocusEditorMsg{} }

	case key.Matches(msg, SidebarKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

func (m *SidebarModel) openPage(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.state.SelectPage(context.Background(), &id); err != nil {
			return errToast(err)
		}
		return PageSelectedMsg{PageID: id}
	}
}

// SelectedPage returns the page under the cursor
func (m *SidebarModel) SelectedPage() *domain.Page {
	if node := m.selectedNode(); node != nil {
		return node.Page
	}
	return nil
}

func (m *SidebarModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *SidebarModel) selectPage(id int64) {
	for i, n := range m.flatNodes {
		if n.Page.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *SidebarModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the sidebar
func (m *SidebarModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Pages"))
	b.WriteString("\n\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(RenderMuted("No pages yet."))
		b.WriteString("\n")
		b.WriteString(RenderMuted("Press n to create one."))
		b.WriteString("\n")
	}

	var currentID int64
	if current := m.state.CurrentPage(); current != nil {
		currentID = current.ID
	}
	for i, node := range m.flatNodes {
		b.WriteString(m.renderNode(node, i == m.cursor, node.Page.ID == currentID))
		b.WriteString("\n")
	}

	if m.focused {
		b.WriteString("\n")
		b.WriteString(RenderHelpLine(SidebarKeys.New, SidebarKeys.NewChild, SidebarKeys.Help))
	}

	style := styles.Sidebar
	if m.focused {
		style = styles.SidebarFocused
	}
	if m.Width > 0 {
		style = style.Width(m.Width)
	}
	if m.Height > 0 {
		style = style.Height(m.Height)
	}
	return style.Render(b.String())
}

func (m *SidebarModel) renderNode(node *domain.TreeNode, selected, current bool) string {
	indent := strings.Repeat("  ", node.Depth())

	var prefix string
	switch {
	case !node.HasChildren():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	title := node.Page.Title
	if limit := m.Width - len(indent) - 6; limit > 3 && len([]rune(title)) > limit {
		title = string([]rune(title)[:limit-1]) + "…"
	}

	style := styles.NodePage
	switch {
	case selected && m.focused:
		style = styles.NodeSelected
	case current:
		style = styles.NodeCurrent
	}

	return indent + styles.TreeBranch.Render(prefix) + style.Render(title)
}
