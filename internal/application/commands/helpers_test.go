package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/domain"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestStore opens a fresh database in a temp dir and pins the clock
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	prev := now
	now = func() time.Time { return fixedTime }
	t.Cleanup(func() { now = prev })

	return store
}

func mustCreatePage(t *testing.T, store *sqlite.Store, title string, parentID *int64) *domain.Page {
	t.Helper()
	res, err := NewCreatePageCommand(store, title, parentID).Execute(context.Background())
	require.NoError(t, err)
	return res.Page
}

func mustCreateBlock(t *testing.T, store *sqlite.Store, pageID int64, blockType domain.BlockType, content string) *domain.Block {
	t.Helper()
	res, err := NewCreateBlockCommand(store, pageID, blockType, content, nil).Execute(context.Background())
	require.NoError(t, err)
	return res.Block
}
