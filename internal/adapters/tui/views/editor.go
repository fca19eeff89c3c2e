package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application"
	"opennoution/internal/application/debounce"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

// EditorKeyMap defines key bindings for the page editor
type EditorKeyMap struct {
	// Navigation mode
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	NewBlock key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Title    key.Binding
	External key.Binding
	Copy     key.Binding
	Preview  key.Binding
	Sidebar  key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Edit mode
	Done      key.Binding
	Split     key.Binding
	Backspace key.Binding
	Bold      key.Binding
	Italic    key.Binding
	Code      key.Binding
	Underline key.Binding
	Highlight key.Binding
	Strike    key.Binding
	Link      key.Binding
	Cut       key.Binding
	CopyEdit  key.Binding
}

var EditorKeys = EditorKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "i"),
		key.WithHelp("enter", "edit"),
	),
	NewBlock: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "new block"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "delete block"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Title: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "title"),
	),
	External: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "$EDITOR"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "preview"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("tab", "esc", "h"),
		key.WithHelp("tab", "pages"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),

	Done: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
	Split: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "new block"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
	),
	Bold: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "bold"),
	),
	Italic: key.NewBinding(
		// terminals send ctrl+i as tab
		key.WithKeys("ctrl+i", "tab"),
		key.WithHelp("ctrl+i", "italic"),
	),
	Code: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "code"),
	),
	Underline: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "underline"),
	),
	Highlight: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "highlight"),
	),
	Strike: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "strike"),
	),
	Link: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "link"),
	),
	Cut: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "cut word"),
	),
	CopyEdit: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy word"),
	),
}

// formatKeys maps edit-mode shortcuts to the format action they apply
var formatKeys = []struct {
	binding *key.Binding
	action  domain.FormatAction
}{
	{&EditorKeys.Bold, domain.FormatBold},
	{&EditorKeys.Italic, domain.FormatItalic},
	{&EditorKeys.Code, domain.FormatCode},
	{&EditorKeys.Underline, domain.FormatUnderline},
	{&EditorKeys.Highlight, domain.FormatHighlight},
	{&EditorKeys.Strike, domain.FormatStrike},
	{&EditorKeys.Link, domain.FormatLink},
	{&EditorKeys.Cut, domain.FormatCut},
}

// EditorModel edits the blocks of the current page
type EditorModel struct {
	ViewState
	state *state.State
	saver *debounce.Debouncer[BlockEdit]
	clip  func(string) error

	page    *domain.Page
	blocks  []domain.Block
	cursor  int
	focused bool

	editing bool
	input   textarea.Model
	slash   SlashMenuModel

	editingTitle bool
	title        textinput.Model
}

// NewEditorModel creates a new editor. saver receives every content change
// and decides when it is written.
func NewEditorModel(st *state.State, saver *debounce.Debouncer[BlockEdit]) *EditorModel {
	input := textarea.New()
	input.Prompt = ""
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(1)
	input.FocusedStyle.CursorLine = lipgloss.NewStyle()
	input.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	title := textinput.New()
	title.Placeholder = domain.DefaultPageTitle
	title.CharLimit = application.MaxTitleLength

	return &EditorModel{
		state: st,
		saver: saver,
		clip:  clipboard.WriteAll,
		input: input,
		title: title,
	}
}

// Init initializes the editor
func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// Focus gives the editor keyboard focus
func (m *EditorModel) Focus() {
	m.focused = true
}

// Blur removes keyboard focus, saving any pending edit first
func (m *EditorModel) Blur() {
	m.focused = false
	m.stopEditing()
}

// IsEditing reports whether a block or the title is being edited
func (m *EditorModel) IsEditing() bool {
	return m.editing || m.editingTitle
}

// SetClipboard replaces the clipboard writer
func (m *EditorModel) SetClipboard(fn func(string) error) {
	m.clip = fn
}

// Reload re-reads the current page and blocks from the shared state. The
// block being edited keeps its in-progress content.
func (m *EditorModel) Reload() {
	snap := m.state.Snapshot()
	pageChanged := (m.page == nil) != (snap.CurrentPage == nil) ||
		(m.page != nil && snap.CurrentPage != nil && m.page.ID != snap.CurrentPage.ID)

	editingID := m.editingBlockID()
	m.page = snap.CurrentPage
	m.blocks = snap.Blocks

	if pageChanged {
		m.cursor = 0
		m.editingTitle = false
		m.stopEditing()
	}
	if m.editing && domain.IndexOfBlock(m.blocks, editingID) < 0 {
		// The edited block is gone
		m.saver.Cancel()
		m.editing = false
		m.slash.Close()
		m.input.Blur()
	}
	if m.editing {
		m.cursor = domain.IndexOfBlock(m.blocks, editingID)
	}
	m.clampCursor()
}

// Select moves the cursor to a block
func (m *EditorModel) Select(blockID int64) {
	if i := domain.IndexOfBlock(m.blocks, blockID); i >= 0 {
		m.cursor = i
	}
}

// Update handles messages for the editor
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StateChangedMsg:
		m.Reload()
		if msg.SelectBlockID != 0 {
			m.Select(msg.SelectBlockID)
			if msg.Edit {
				return m, m.startEditing()
			}
		}
		return m, nil

	case PageSelectedMsg:
		m.Reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.editingTitle:
			return m, m.updateTitle(msg)
		case m.editing:
			return m, m.updateEditing(msg)
		default:
			return m, m.updateNavigating(msg)
		}
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *EditorModel) updateNavigating(msg tea.KeyMsg) tea.Cmd {
	if m.page == nil {
		switch {
		case key.Matches(msg, EditorKeys.Sidebar):
			return func() tea.Msg { return FocusSidebarMsg{} }
		case key.Matches(msg, EditorKeys.Help):
			return func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, EditorKeys.Quit):
			return tea.Quit
		}
		return nil
	}

	block := m.selectedBlock()
	switch {
	case key.Matches(msg, EditorKeys.Quit):
		return tea.Quit

	case key.Matches(msg, EditorKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil

	case key.Matches(msg, EditorKeys.Down):
		if m.cursor < len(m.blocks)-1 {
			m.cursor++
		}
		return nil

	case key.Matches(msg, EditorKeys.Edit):
		if block == nil {
			return m.createFirstBlock()
		}
		return m.startEditing()

	case key.Matches(msg, EditorKeys.NewBlock):
		if block == nil {
			return m.createFirstBlock()
		}
		return m.insertAfter(block.ID)

	case key.Matches(msg, EditorKeys.Delete):
		if block == nil {
			return nil
		}
		id := block.ID
		return run(func(ctx context.Context) error {
			return m.state.DeleteBlock(ctx, id)
		}, StateChangedMsg{})

	case key.Matches(msg, EditorKeys.Toggle):
		if block == nil || block.Type != domain.BlockTypeChecklist {
			return nil
		}
		id := block.ID
		return run(func(ctx context.Context) error {
			return m.state.ToggleChecked(ctx, id)
		}, StateChangedMsg{SelectBlockID: id})

	case key.Matches(msg, EditorKeys.MoveUp):
		return m.moveBlock(-1)

	case key.Matches(msg, EditorKeys.MoveDown):
		return m.moveBlock(1)

	case key.Matches(msg, EditorKeys.Title):
		m.editingTitle = true
		m.title.SetValue(m.page.Title)
		m.title.CursorEnd()
		return m.title.Focus()

	case key.Matches(msg, EditorKeys.External):
		if block == nil {
			return nil
		}
		b := *block
		return func() tea.Msg { return OpenEditorMsg{Block: b} }

	case key.Matches(msg, EditorKeys.Copy):
		if block == nil {
			return nil
		}
		return m.copyText(block.Content, "Copied block")

	case key.Matches(msg, EditorKeys.Preview):
		return func() tea.Msg { return PreviewPageMsg{} }

	case key.Matches(msg, EditorKeys.Sidebar):
		return func() tea.Msg { return FocusSidebarMsg{} }

	case key.Matches(msg, EditorKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

func (m *EditorModel) updateEditing(msg tea.KeyMsg) tea.Cmd {
	block := m.selectedBlock()
	if block == nil {
		m.stopEditing()
		return nil
	}

	if m.slash.IsOpen() {
		switch {
		case key.Matches(msg, SlashMenuKeys.Up):
			m.slash.Up()
			return nil
		case key.Matches(msg, SlashMenuKeys.Down):
			m.slash.Down()
			return nil
		case key.Matches(msg, SlashMenuKeys.Close):
			// Drop the "/query" along with the menu
			m.slash.Close()
			m.setContent("")
			return nil
		case key.Matches(msg, SlashMenuKeys.Select):
			return m.applySlashCommand(block.ID)
		}
	}

	switch {
	case key.Matches(msg, EditorKeys.Done):
		m.stopEditing()
		return nil

	case key.Matches(msg, EditorKeys.Split):
		m.saver.Flush()
		return m.insertAfter(block.ID)

	case key.Matches(msg, EditorKeys.Backspace) && m.input.Value() == "" && block.Type != domain.BlockTypeText:
		id := block.ID
		m.saver.Cancel()
		m.editing = false
		m.input.Blur()
		if m.cursor > 0 {
			m.cursor--
		}
		return run(func(ctx context.Context) error {
			return m.state.DeleteBlock(ctx, id)
		}, StateChangedMsg{})

	case key.Matches(msg, EditorKeys.CopyEdit):
		start, end := domain.WordBounds(m.input.Value(), cursorOffset(m.input))
		return m.copyText(m.input.Value()[start:end], "Copied")
	}

	for _, fk := range formatKeys {
		if key.Matches(msg, *fk.binding) {
			return m.applyFormat(fk.action)
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.contentChanged()
	}
	return cmd
}

func (m *EditorModel) updateTitle(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingTitle = false
		m.title.Blur()
		return nil
	case tea.KeyEnter:
		m.editingTitle = false
		m.title.Blur()
		title := strings.TrimSpace(m.title.Value())
		if title == "" {
			title = domain.DefaultPageTitle
		}
		if m.page == nil || title == m.page.Title {
			return nil
		}
		id := m.page.ID
		return run(func(ctx context.Context) error {
			return m.state.UpdatePage(ctx, id, domain.PagePatch{Title: &title})
		}, StateChangedMsg{})
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return cmd
}

// startEditing focuses the textarea on the selected block
func (m *EditorModel) startEditing() tea.Cmd {
	block := m.selectedBlock()
	if block == nil {
		return nil
	}
	m.editing = true
	m.input.SetValue(block.Content)
	m.input.CursorEnd()
	m.resizeInput()
	m.slash.Sync(block.Content)
	return m.input.Focus()
}

// stopEditing saves any pending edit and leaves edit mode
func (m *EditorModel) stopEditing() {
	if m.saver != nil {
		m.saver.Flush()
	}
	m.editing = false
	m.slash.Close()
	m.input.Blur()
}

func (m *EditorModel) editingBlockID() int64 {
	if !m.editing {
		return 0
	}
	if b := m.selectedBlock(); b != nil {
		return b.ID
	}
	return 0
}

// setContent replaces the edited content and schedules a save
func (m *EditorModel) setContent(content string) {
	m.input.SetValue(content)
	m.input.CursorEnd()
	m.contentChanged()
}

func (m *EditorModel) contentChanged() {
	block := m.selectedBlock()
	if block == nil {
		return
	}
	content := m.input.Value()
	m.blocks[m.cursor].Content = content
	m.slash.Sync(content)
	m.resizeInput()
	m.saver.Trigger(BlockEdit{BlockID: block.ID, Content: content})
}

func (m *EditorModel) applySlashCommand(blockID int64) tea.Cmd {
	selected, ok := m.slash.Selected()
	if !ok {
		return nil
	}
	m.slash.Close()
	m.saver.Cancel()
	m.input.SetValue("")
	m.blocks[m.cursor].Content = ""
	m.blocks[m.cursor].Type = selected.Type

	blockType := selected.Type
	return run(func(ctx context.Context) error {
		return m.state.SetBlockType(ctx, blockID, blockType)
	}, StateChangedMsg{SelectBlockID: blockID})
}

// applyFormat wraps or removes the word under the cursor
func (m *EditorModel) applyFormat(action domain.FormatAction) tea.Cmd {
	content := m.input.Value()
	start, end := domain.WordBounds(content, cursorOffset(m.input))

	var cmd tea.Cmd
	if action == domain.FormatCut {
		cmd = m.copyText(content[start:end], "Cut")
	}

	updated, err := domain.ApplyFormat(content, start, end, action)
	if err != nil {
		return func() tea.Msg { return errToast(err) }
	}
	m.setContent(updated)
	return cmd
}

func (m *EditorModel) copyText(text, done string) tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		if err := clip(text); err != nil {
			return errToast(fmt.Errorf("clipboard: %w", err))
		}
		return ToastMsg{Text: done}
	}
}

func (m *EditorModel) createFirstBlock() tea.Cmd {
	if m.page == nil {
		return nil
	}
	pageID := m.page.ID
	return func() tea.Msg {
		block, err := m.state.CreateBlock(context.Background(), pageID, domain.BlockTypeText, "")
		if err != nil {
			return errToast(err)
		}
		return StateChangedMsg{SelectBlockID: block.ID, Edit: true}
	}
}

func (m *EditorModel) insertAfter(afterID int64) tea.Cmd {
	if m.page == nil {
		return nil
	}
	pageID := m.page.ID
	m.editing = false
	m.slash.Close()
	m.input.Blur()
	return func() tea.Msg {
		block, err := m.state.InsertBlockAfter(context.Background(), pageID, afterID, domain.BlockTypeText)
		if err != nil {
			return errToast(err)
		}
		return StateChangedMsg{SelectBlockID: block.ID, Edit: true}
	}
}

func (m *EditorModel) moveBlock(delta int) tea.Cmd {
	target := m.cursor + delta
	if m.page == nil || target < 0 || target >= len(m.blocks) {
		return nil
	}
	ids := make([]int64, len(m.blocks))
	for i, b := range m.blocks {
		ids[i] = b.ID
	}
	ids[m.cursor], ids[target] = ids[target], ids[m.cursor]
	moved := ids[target]
	pageID := m.page.ID

	return run(func(ctx context.Context) error {
		return m.state.ReorderBlocks(ctx, pageID, ids)
	}, StateChangedMsg{SelectBlockID: moved})
}

func (m *EditorModel) selectedBlock() *domain.Block {
	if m.cursor >= 0 && m.cursor < len(m.blocks) {
		return &m.blocks[m.cursor]
	}
	return nil
}

func (m *EditorModel) clampCursor() {
	if m.cursor >= len(m.blocks) {
		m.cursor = len(m.blocks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *EditorModel) resizeInput() {
	width := m.Width - 6
	if width < 20 {
		width = 20
	}
	m.input.SetWidth(width)

	lines := strings.Count(m.input.Value(), "\n") + 1
	m.input.SetHeight(min(max(lines, 1), 12))
}

// cursorOffset converts the textarea cursor into a byte offset in Value()
func cursorOffset(ta textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()
	info := ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset

	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len(lines[i]) + 1
	}
	if row < len(lines) {
		runes := []rune(lines[row])
		col = min(max(col, 0), len(runes))
		offset += len(string(runes[:col]))
	}
	return offset
}

// View renders the editor
func (m *EditorModel) View() string {
	if m.page == nil {
		return styles.Editor.Render(
			RenderMuted("Select a page in the sidebar, or press n to create one."),
		)
	}

	var b strings.Builder

	if m.editingTitle {
		b.WriteString(styles.InputFocused.Render(m.title.View()))
	} else {
		b.WriteString(styles.PageTitle.Render(m.page.Title))
	}
	b.WriteString("\n\n")

	if len(m.blocks) == 0 {
		b.WriteString(RenderMuted("Empty page. Press enter to start writing."))
		b.WriteString("\n")
	}

	width := max(m.Width-6, 20)
	for i, block := range m.blocks {
		gutter := "  "
		if m.focused && i == m.cursor {
			gutter = styles.BlockCursor.Render("▌ ")
		}

		if m.editing && i == m.cursor {
			b.WriteString(gutter)
			b.WriteString(blockPrefix(block))
			b.WriteString(m.input.View())
			b.WriteString("\n")
			if m.slash.IsOpen() {
				b.WriteString(m.slash.View())
				b.WriteString("\n")
			}
			continue
		}

		b.WriteString(gutter)
		b.WriteString(RenderBlock(block, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.Editor.Render(b.String())
}

func (m *EditorModel) renderHelpLine() string {
	switch {
	case m.editingTitle:
		return RenderHelpLine(DefaultInputFormKeys.Submit, DefaultInputFormKeys.Cancel)
	case m.slash.IsOpen():
		return RenderHelpLine(SlashMenuKeys.Up, SlashMenuKeys.Down, SlashMenuKeys.Select, SlashMenuKeys.Close)
	case m.editing:
		return RenderHelpLine(EditorKeys.Done, EditorKeys.Split, EditorKeys.Bold, EditorKeys.Italic, EditorKeys.Code)
	}
	return RenderHelpLine(EditorKeys.Edit, EditorKeys.NewBlock, EditorKeys.Delete, EditorKeys.Toggle, EditorKeys.Title, EditorKeys.Sidebar, EditorKeys.Help)
}
