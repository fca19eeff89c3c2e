package views

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

func newTestEditor(t *testing.T) (*EditorModel, *state.State, *domain.Page) {
	t.Helper()
	st := newTestState(t)
	ctx := context.Background()

	page, err := st.CreatePage(ctx, "Journal", nil)
	require.NoError(t, err)
	require.NoError(t, st.SelectPage(ctx, &page.ID))

	m := NewEditorModel(st, newTestSaver(t, st))
	m.SetSize(80, 24)
	m.Focus()
	m.Reload()
	return m, st, page
}

func TestEditor_EnterOnEmptyPageCreatesBlock(t *testing.T) {
	m, st, _ := newTestEditor(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := exec(t, cmd)
	changed, ok := msg.(StateChangedMsg)
	require.True(t, ok, "expected StateChangedMsg, got %T", msg)
	assert.True(t, changed.Edit)

	m.Update(msg)
	assert.True(t, m.IsEditing())
	require.Len(t, st.Blocks(), 1)
	assert.Equal(t, domain.BlockTypeText, st.Blocks()[0].Type)
}

func TestEditor_TypingSavesOnExit(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.IsEditing())

	typeText(m, "hello")
	assert.True(t, m.saver.Pending())
	assert.Equal(t, "", st.Blocks()[0].Content, "nothing written before the delay")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsEditing())
	assert.Equal(t, "hello", st.Blocks()[0].Content)
}

func TestEditor_EnterSplitsIntoNewBlock(t *testing.T) {
	m, st, page := newTestEditor(t)
	ctx := context.Background()
	first, err := st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	_, err = st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "last")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "first")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := exec(t, cmd)
	m.Update(msg)

	blocks := st.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, first.ID, blocks[0].ID)
	assert.Equal(t, "first", blocks[0].Content)
	assert.Equal(t, "", blocks[1].Content)
	assert.Equal(t, "last", blocks[2].Content)

	assert.True(t, m.IsEditing())
	assert.Equal(t, 1, m.cursor)
}

func TestEditor_SlashCommandChangesType(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "/todo")
	require.True(t, m.slash.IsOpen())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(exec(t, cmd))

	block := st.Blocks()[0]
	assert.Equal(t, domain.BlockTypeChecklist, block.Type)
	assert.Equal(t, "", block.Content)
	assert.False(t, block.IsChecked())
	assert.False(t, m.slash.IsOpen())
}

func TestEditor_EscClosesSlashMenuAndClearsQuery(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "/h")
	require.True(t, m.slash.IsOpen())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.slash.IsOpen())
	assert.True(t, m.IsEditing(), "first esc only closes the menu")
	assert.Equal(t, "", m.input.Value())
}

func TestEditor_BackspaceDeletesEmptyNonTextBlock(t *testing.T) {
	m, st, page := newTestEditor(t)
	ctx := context.Background()
	_, err := st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "intro")
	require.NoError(t, err)
	_, err = st.CreateBlock(ctx, page.ID, domain.BlockTypeH1, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.IsEditing())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(exec(t, cmd))

	blocks := st.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "intro", blocks[0].Content)
	assert.False(t, m.IsEditing())
	assert.Equal(t, 0, m.cursor)
}

func TestEditor_BackspaceKeepsEmptyTextBlock(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Len(t, st.Blocks(), 1)
	assert.True(t, m.IsEditing())
}

func TestEditor_FormatWordAtCursor(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"bold", tea.KeyMsg{Type: tea.KeyCtrlB}, "say **hello**"},
		{"code", tea.KeyMsg{Type: tea.KeyCtrlE}, "say `hello`"},
		{"strike", tea.KeyMsg{Type: tea.KeyCtrlS}, "say ~~hello~~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, st, page := newTestEditor(t)
			_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
			require.NoError(t, err)
			m.Reload()

			m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			typeText(m, "say hello")
			m.Update(tt.key)

			assert.Equal(t, tt.want, m.input.Value())
			m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			assert.Equal(t, tt.want, st.Blocks()[0].Content)
		})
	}
}

func TestEditor_CutWordCopiesToClipboard(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	var clip string
	m.SetClipboard(func(s string) error {
		clip = s
		return nil
	})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "keep drop")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	exec(t, cmd)

	assert.Equal(t, "drop", clip)
	assert.Equal(t, "keep ", m.input.Value())
}

func TestEditor_ToggleChecklist(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeChecklist, "buy milk")
	require.NoError(t, err)
	m.Reload()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(exec(t, cmd))

	assert.True(t, st.Blocks()[0].IsChecked())
	assert.Contains(t, m.View(), "[x] buy milk")
}

func TestEditor_MoveBlockDown(t *testing.T) {
	m, st, page := newTestEditor(t)
	ctx := context.Background()
	a, err := st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "a")
	require.NoError(t, err)
	b, err := st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "b")
	require.NoError(t, err)
	m.Reload()

	_, cmd := m.Update(keyRunes("J"))
	m.Update(exec(t, cmd))

	blocks := st.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, []int64{b.ID, a.ID}, []int64{blocks[0].ID, blocks[1].ID})
	assert.Equal(t, 1, m.cursor, "cursor follows the moved block")
}

func TestEditor_EditTitle(t *testing.T) {
	m, st, _ := newTestEditor(t)

	m.Update(keyRunes("t"))
	require.True(t, m.IsEditing())

	m.title.SetValue("Daily log")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(exec(t, cmd))

	assert.Equal(t, "Daily log", st.CurrentPage().Title)
	assert.False(t, m.IsEditing())
}

func TestEditor_ReloadKeepsContentBeingEdited(t *testing.T) {
	m, st, page := newTestEditor(t)
	_, err := st.CreateBlock(context.Background(), page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)
	m.Reload()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "draft")

	m.Update(StateChangedMsg{})
	assert.True(t, m.IsEditing())
	assert.Equal(t, "draft", m.input.Value())
}

func TestEditor_PreviewKey(t *testing.T) {
	m, _, _ := newTestEditor(t)

	_, cmd := m.Update(keyRunes("p"))
	require.NotNil(t, cmd)
	assert.Equal(t, PreviewPageMsg{}, cmd())
}

func TestEditor_ViewWithoutPage(t *testing.T) {
	st := newTestState(t)
	m := NewEditorModel(st, newTestSaver(t, st))
	m.Reload()

	assert.Contains(t, m.View(), "Select a page")
}

func TestCursorOffset(t *testing.T) {
	m, _, _ := newTestEditor(t)
	m.input.Focus()
	m.input.SetValue("ab\ncd")

	assert.Equal(t, len("ab\ncd"), cursorOffset(m.input))

	m.input.CursorStart()
	assert.Equal(t, len("ab\n"), cursorOffset(m.input))
}
