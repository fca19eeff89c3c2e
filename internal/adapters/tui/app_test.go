package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/adapters/backupfile"
	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/adapters/tui/views"
	"opennoution/internal/application/state"
	"opennoution/internal/config"
	"opennoution/internal/domain"
)

func newTestApp(t *testing.T) (*App, *state.State) {
	t.Helper()
	dir := t.TempDir()
	store, err := sqlite.Open(context.Background(), filepath.Join(dir, "app.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	st := state.New(store, zerolog.Nop())
	app := NewApp(Deps{
		State: st,
		Config: &config.Config{
			DataDir:       dir,
			Debounce:      time.Hour,
			ToastDuration: time.Second,
		},
		Files: backupfile.New(zerolog.Nop()),
		Log:   zerolog.Nop(),
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app, st
}

func TestApp_FirstRunShowsOnboarding(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(app.loadState())
	assert.Equal(t, ViewOnboarding, app.view)
	assert.Contains(t, app.View(), "Welcome")
}

func TestApp_OnboardedGoesToWorkspace(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.CompleteOnboarding(context.Background(), domain.UserProfile{Name: "Ada"}))

	app.Update(app.loadState())
	assert.Equal(t, ViewWorkspace, app.view)
	assert.Contains(t, app.View(), "No pages yet.")
}

func TestApp_DialogRoundTrip(t *testing.T) {
	app, st := newTestApp(t)
	require.NoError(t, st.CompleteOnboarding(context.Background(), domain.UserProfile{Name: "Ada"}))
	app.Update(app.loadState())

	app.Update(views.SwitchToCreatePageMsg{})
	assert.Equal(t, ViewPageForm, app.view)

	app.Update(views.ActionDoneMsg{Message: "Created"})
	assert.Equal(t, ViewWorkspace, app.view)
	assert.Contains(t, app.View(), "Created")
}

func TestApp_SaveNotificationArrivesAsEvent(t *testing.T) {
	app, st := newTestApp(t)
	ctx := context.Background()
	page, err := st.CreatePage(ctx, "Page", nil)
	require.NoError(t, err)
	block, err := st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "")
	require.NoError(t, err)

	app.saver.Trigger(views.BlockEdit{BlockID: block.ID, Content: "typed"})
	require.True(t, app.saver.Flush())

	msg := app.waitForEvent()
	ev, ok := msg.(eventMsg)
	require.True(t, ok)
	assert.Equal(t, blockSavedMsg{blockID: block.ID}, ev.msg)

	blocks, err := st.Store().ListBlocksByPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "typed", blocks[0].Content)
}

func TestApp_FatalScreen(t *testing.T) {
	app := NewFatalApp(assert.AnError, "/data/opennoution.db")

	assert.Nil(t, app.Init())
	assert.Contains(t, app.View(), "could not start")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

type fakePreviewer struct {
	page   *domain.Page
	blocks []domain.Block
}

func (f *fakePreviewer) Open(page *domain.Page, blocks []domain.Block) (string, error) {
	f.page, f.blocks = page, blocks
	return "/tmp/page.html", nil
}

func TestApp_PreviewCurrentPage(t *testing.T) {
	app, st := newTestApp(t)
	ctx := context.Background()
	page, err := st.CreatePage(ctx, "Notes", nil)
	require.NoError(t, err)
	_, err = st.CreateBlock(ctx, page.ID, domain.BlockTypeText, "hello")
	require.NoError(t, err)
	require.NoError(t, st.SelectPage(ctx, &page.ID))

	fake := &fakePreviewer{}
	app.deps.Preview = fake

	_, cmd := app.Update(views.PreviewPageMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, views.ToastMsg{Text: "Preview written to /tmp/page.html"}, cmd())
	require.NotNil(t, fake.page)
	assert.Equal(t, "Notes", fake.page.Title)
	require.Len(t, fake.blocks, 1)
	assert.Equal(t, "hello", fake.blocks[0].Content)
}
