package views

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/application/debounce"
	"opennoution/internal/application/state"
	"opennoution/internal/domain"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func newTestState(t *testing.T) *state.State {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "views.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	st := state.New(store, zerolog.Nop())
	require.NoError(t, st.Load(context.Background()))
	return st
}

// stoppedClock never fires, so saves only happen on Flush
type stoppedClock struct{}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

func (stoppedClock) AfterFunc(time.Duration, func()) debounce.Timer {
	return stoppedTimer{}
}

func newTestSaver(t *testing.T, st *state.State) *debounce.Debouncer[BlockEdit] {
	t.Helper()
	return debounce.NewWithClock(stoppedClock{}, time.Second, func(e BlockEdit) {
		content := e.Content
		err := st.UpdateBlock(context.Background(), e.BlockID, domain.BlockPatch{Content: &content})
		require.NoError(t, err)
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

// exec runs cmd and returns its message, failing on toasts that report errors
func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if toast, ok := msg.(ToastMsg); ok && toast.IsErr {
		t.Fatalf("command failed: %s", toast.Text)
	}
	return msg
}
