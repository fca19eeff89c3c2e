package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/application"
	"opennoution/internal/domain"
)

func TestCreatePageCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		parentID  *int64
		wantField string
	}{
		{name: "root page", title: "Notes"},
		{name: "empty title allowed", title: ""},
		{name: "child page", title: "Child", parentID: domain.Int64Ptr(3)},
		{name: "title too long", title: strings.Repeat("a", application.MaxTitleLength+1), wantField: "Title"},
		{name: "invalid parent", title: "Child", parentID: domain.Int64Ptr(0), wantField: "ParentID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreatePageCommand{Title: tt.title, ParentID: tt.parentID}
			err := cmd.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *application.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantField, valErr.Field)
		})
	}
}

func TestCreatePageCommand_Positions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := mustCreatePage(t, store, "First", nil)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, fixedTime, first.CreatedAt)
	assert.Equal(t, fixedTime, first.UpdatedAt)

	second := mustCreatePage(t, store, "Second", nil)
	assert.Equal(t, 1, second.Position)

	child := mustCreatePage(t, store, "Child", &first.ID)
	assert.Equal(t, 0, child.Position, "first child starts a new sibling group")

	// Positions need not be contiguous; the next one follows the maximum
	pos := 7
	_, err := NewUpdatePageCommand(store, second.ID, domain.PagePatch{Position: &pos}).Execute(ctx)
	require.NoError(t, err)

	third := mustCreatePage(t, store, "Third", nil)
	assert.Equal(t, 8, third.Position)
}

func TestCreatePageCommand_DefaultTitle(t *testing.T) {
	store := newTestStore(t)

	page := mustCreatePage(t, store, "  ", nil)
	assert.Equal(t, domain.DefaultPageTitle, page.Title)
}

func TestCreatePageCommand_MissingParent(t *testing.T) {
	store := newTestStore(t)

	_, err := NewCreatePageCommand(store, "Orphan", domain.Int64Ptr(42)).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestListPagesCommand_Order(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := mustCreatePage(t, store, "A", nil)
	b := mustCreatePage(t, store, "B", nil)
	zero := 0
	_, err := NewUpdatePageCommand(store, b.ID, domain.PagePatch{Position: &zero}).Execute(ctx)
	require.NoError(t, err)

	pages, err := NewListPagesCommand(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, a.ID, pages[0].ID, "equal positions fall back to ID order")
	assert.Equal(t, b.ID, pages[1].ID)

	children, err := NewListChildPagesCommand(store, &a.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestUpdatePageCommand_PartialPatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	page := mustCreatePage(t, store, "Draft", nil)
	later := fixedTime.Add(5 * time.Minute)
	now = func() time.Time { return later }

	title := "Final"
	res, err := NewUpdatePageCommand(store, page.ID, domain.PagePatch{Title: &title}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Final", res.Page.Title)
	assert.Equal(t, page.Position, res.Page.Position)
	assert.Equal(t, fixedTime, res.Page.CreatedAt)
	assert.Equal(t, later, res.Page.UpdatedAt)

	stored, err := NewGetPageCommand(store, page.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Nil(t, stored.ParentID)
}

func TestUpdatePageCommand_MissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	title := "Ghost"
	res, err := NewUpdatePageCommand(store, 99, domain.PagePatch{Title: &title}).Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Page)
}

func TestUpdatePageCommand_Reparent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	root := mustCreatePage(t, store, "Root", nil)
	child := mustCreatePage(t, store, "Child", &root.ID)
	grandchild := mustCreatePage(t, store, "Grandchild", &child.ID)
	other := mustCreatePage(t, store, "Other", nil)

	t.Run("under a descendant is refused", func(t *testing.T) {
		parent := &grandchild.ID
		_, err := NewUpdatePageCommand(store, root.ID, domain.PagePatch{ParentID: &parent}).Execute(ctx)
		assert.ErrorIs(t, err, application.ErrPageCycle)
	})

	t.Run("under itself is refused", func(t *testing.T) {
		parent := &root.ID
		_, err := NewUpdatePageCommand(store, root.ID, domain.PagePatch{ParentID: &parent}).Execute(ctx)
		assert.ErrorIs(t, err, application.ErrPageCycle)
	})

	t.Run("under an unrelated page succeeds", func(t *testing.T) {
		parent := &other.ID
		res, err := NewUpdatePageCommand(store, child.ID, domain.PagePatch{ParentID: &parent}).Execute(ctx)
		require.NoError(t, err)
		require.NotNil(t, res.Page.ParentID)
		assert.Equal(t, other.ID, *res.Page.ParentID)
	})

	t.Run("back to the root", func(t *testing.T) {
		var parent *int64
		res, err := NewUpdatePageCommand(store, child.ID, domain.PagePatch{ParentID: &parent}).Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, res.Page.ParentID)
	})
}

func TestDeletePageCommand_Cascade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := mustCreatePage(t, store, "A", nil)
	b := mustCreatePage(t, store, "B", &a.ID)
	c := mustCreatePage(t, store, "C", &b.ID)
	keep := mustCreatePage(t, store, "Keep", nil)

	mustCreateBlock(t, store, a.ID, domain.BlockTypeText, "a1")
	mustCreateBlock(t, store, b.ID, domain.BlockTypeText, "b1")
	mustCreateBlock(t, store, c.ID, domain.BlockTypeText, "c1")
	mustCreateBlock(t, store, c.ID, domain.BlockTypeText, "c2")
	kept := mustCreateBlock(t, store, keep.ID, domain.BlockTypeText, "keep")

	res, err := NewDeletePageCommand(store, a.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, b.ID, a.ID}, res.DeletedPages, "children go before parents")
	assert.Equal(t, 4, res.DeletedBlocks)

	pages, err := NewListPagesCommand(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, keep.ID, pages[0].ID)

	blocks, err := store.ListBlocks(ctx)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, kept.ID, blocks[0].ID)
}

func TestDeletePageCommand_CycleRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := mustCreatePage(t, store, "A", nil)
	b := mustCreatePage(t, store, "B", &a.ID)
	mustCreateBlock(t, store, a.ID, domain.BlockTypeText, "a1")

	// Corrupt the hierarchy directly through the store: A <-> B
	a.ParentID = &b.ID
	require.NoError(t, store.UpdatePage(ctx, a))

	_, err := NewDeletePageCommand(store, a.ID).Execute(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrPageCycle))

	pages, err := store.ListPages(ctx)
	require.NoError(t, err)
	assert.Len(t, pages, 2, "failed cascade must not delete anything")

	count, err := store.CountBlocksByPage(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeletePageCommand_MissingPage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	kept := mustCreatePage(t, store, "Kept", nil)

	res, err := NewDeletePageCommand(store, 9999).Execute(ctx)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, application.ErrNotFound))

	var nf *application.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(9999), nf.ID)

	pages, err := store.ListPages(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, kept.ID, pages[0].ID)
}
