package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/application"
	"opennoution/internal/domain"
)

func blockIDs(blocks []domain.Block) []int64 {
	ids := make([]int64, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func TestCreateBlockCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cmd       CreateBlockCommand
		wantField string
	}{
		{name: "valid", cmd: CreateBlockCommand{PageID: 1, Type: domain.BlockTypeText}},
		{name: "missing page", cmd: CreateBlockCommand{Type: domain.BlockTypeText}, wantField: "PageID"},
		{name: "missing type", cmd: CreateBlockCommand{PageID: 1}, wantField: "Type"},
		{name: "unknown type", cmd: CreateBlockCommand{PageID: 1, Type: "table"}, wantField: "Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
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

func TestCreateBlockCommand_AppendsByCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)

	first := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "one")
	second := mustCreateBlock(t, store, page.ID, domain.BlockTypeH1, "two")
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	pos := 10
	res, err := NewCreateBlockCommand(store, page.ID, domain.BlockTypeCode, "x", &pos).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Block.Position)

	checklist := mustCreateBlock(t, store, page.ID, domain.BlockTypeChecklist, "task")
	assert.Equal(t, 3, checklist.Position)
	require.NotNil(t, checklist.Checked)
	assert.False(t, *checklist.Checked)
}

func TestCreateBlockCommand_MissingPage(t *testing.T) {
	store := newTestStore(t)

	_, err := NewCreateBlockCommand(store, 5, domain.BlockTypeText, "", nil).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestInsertBlockAfterCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)

	a := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "a")
	b := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "b")
	c := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "c")

	res, err := NewInsertBlockAfterCommand(store, page.ID, a.ID, domain.BlockTypeText).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Block.Position)
	assert.Empty(t, res.Block.Content)

	blocks, err := NewListBlocksCommand(store, page.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, res.Block.ID, b.ID, c.ID}, blockIDs(blocks))
	for i, blk := range blocks {
		assert.Equal(t, i, blk.Position)
	}

	t.Run("unknown anchor appends", func(t *testing.T) {
		res, err := NewInsertBlockAfterCommand(store, page.ID, 999, domain.BlockTypeText).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Block.Position)
	})
}

func TestUpdateBlockCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)
	block := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "draft")

	content := "final"
	res, err := NewUpdateBlockCommand(store, block.ID, domain.BlockPatch{Content: &content}).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "final", res.Block.Content)
	assert.Equal(t, domain.BlockTypeText, res.Block.Type)

	t.Run("missing block is a no-op", func(t *testing.T) {
		res, err := NewUpdateBlockCommand(store, 404, domain.BlockPatch{Content: &content}).Execute(ctx)
		require.NoError(t, err)
		assert.Nil(t, res.Block)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		bad := domain.BlockType("table")
		_, err := NewUpdateBlockCommand(store, block.ID, domain.BlockPatch{Type: &bad}).Execute(ctx)
		var valErr *application.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestSetBlockTypeCommand_ClearsContent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)
	block := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "/todo")

	res, err := NewSetBlockTypeCommand(store, block.ID, domain.BlockTypeChecklist).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BlockTypeChecklist, res.Block.Type)
	assert.Empty(t, res.Block.Content)

	stored, err := store.GetBlock(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BlockTypeChecklist, stored.Type)
	assert.Empty(t, stored.Content)
	assert.False(t, stored.IsChecked())
}

func TestToggleCheckedCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)
	task := mustCreateBlock(t, store, page.ID, domain.BlockTypeChecklist, "ship it")
	text := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "plain")

	res, err := NewToggleCheckedCommand(store, task.ID).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Block.IsChecked())

	res, err = NewToggleCheckedCommand(store, task.ID).Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Block.IsChecked())

	_, err = NewToggleCheckedCommand(store, text.ID).Execute(ctx)
	assert.ErrorIs(t, err, application.ErrInvalidOperation)
}

func TestDeleteBlockCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)
	block := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "gone")

	_, err := NewDeleteBlockCommand(store, block.ID).Execute(ctx)
	require.NoError(t, err)

	blocks, err := NewListBlocksCommand(store, page.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestReorderBlocksCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	page := mustCreatePage(t, store, "Page", nil)
	other := mustCreatePage(t, store, "Other", nil)

	a := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "a")
	b := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "b")
	c := mustCreateBlock(t, store, page.ID, domain.BlockTypeText, "c")
	foreign := mustCreateBlock(t, store, other.ID, domain.BlockTypeText, "x")

	_, err := NewReorderBlocksCommand(store, page.ID, []int64{c.ID, a.ID, b.ID}).Execute(ctx)
	require.NoError(t, err)

	blocks, err := NewListBlocksCommand(store, page.ID).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID, b.ID}, blockIDs(blocks))

	t.Run("duplicate IDs", func(t *testing.T) {
		_, err := NewReorderBlocksCommand(store, page.ID, []int64{a.ID, a.ID}).Execute(ctx)
		var valErr *application.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("foreign block rolls back", func(t *testing.T) {
		_, err := NewReorderBlocksCommand(store, page.ID, []int64{b.ID, foreign.ID}).Execute(ctx)
		assert.ErrorIs(t, err, application.ErrNotFound)

		blocks, err := NewListBlocksCommand(store, page.ID).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{c.ID, a.ID, b.ID}, blockIDs(blocks))
	})
}
