package commands

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"opennoution/internal/application"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// BlockResult contains the block touched by a block command
type BlockResult struct {
	Block   *domain.Block
	Message string
}

// CreateBlockCommand adds a block to a page. A nil Position appends the
// block after the page's existing blocks.
type CreateBlockCommand struct {
	store    ports.Collections
	PageID   int64
	Type     domain.BlockType
	Content  string
	Position *int
}

// NewCreateBlockCommand creates a new CreateBlockCommand
func NewCreateBlockCommand(store ports.Collections, pageID int64, blockType domain.BlockType, content string, position *int) *CreateBlockCommand {
	return &CreateBlockCommand{
		store:    store,
		PageID:   pageID,
		Type:     blockType,
		Content:  content,
		Position: position,
	}
}

// Validate checks the page ID, block type and position
func (c *CreateBlockCommand) Validate() error {
	return application.Validate(c,
		validation.Field(&c.PageID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Type, validation.Required, application.BlockTypeRule),
		validation.Field(&c.Position, validation.Min(0)),
	)
}

// Execute runs the create block command
func (c *CreateBlockCommand) Execute(ctx context.Context) (*BlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	page, err := c.store.GetPage(ctx, c.PageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	if page == nil {
		return nil, &application.NotFoundError{Kind: "page", ID: c.PageID}
	}

	position := 0
	if c.Position != nil {
		position = *c.Position
	} else {
		count, err := c.store.CountBlocksByPage(ctx, c.PageID)
		if err != nil {
			return nil, fmt.Errorf("failed to count blocks: %w", err)
		}
		position = count
	}

	ts := now()
	block := &domain.Block{
		PageID:    c.PageID,
		Type:      c.Type,
		Content:   c.Content,
		Position:  position,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if c.Type == domain.BlockTypeChecklist {
		unchecked := false
		block.Checked = &unchecked
	}
	if _, err := c.store.AddBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	return &BlockResult{
		Block:   block,
		Message: fmt.Sprintf("Created %s block %d on page %d", block.Type, block.ID, block.PageID),
	}, nil
}

// InsertBlockAfterCommand creates an empty block directly after an anchor
// block and renumbers the page so positions match the display order
type InsertBlockAfterCommand struct {
	store   ports.Store
	PageID  int64
	AfterID int64
	Type    domain.BlockType
}

// NewInsertBlockAfterCommand creates a new InsertBlockAfterCommand
func NewInsertBlockAfterCommand(store ports.Store, pageID, afterID int64, blockType domain.BlockType) *InsertBlockAfterCommand {
	return &InsertBlockAfterCommand{
		store:   store,
		PageID:  pageID,
		AfterID: afterID,
		Type:    blockType,
	}
}

// Validate checks the IDs and block type
func (c *InsertBlockAfterCommand) Validate() error {
	return application.Validate(c,
		validation.Field(&c.PageID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.AfterID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Type, validation.Required, application.BlockTypeRule),
	)
}

// Execute runs the insert block command. When the anchor is not on the page
// the new block is appended.
func (c *InsertBlockAfterCommand) Execute(ctx context.Context) (*BlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Block
	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		blocks, err := tx.ListBlocksByPage(ctx, c.PageID)
		if err != nil {
			return err
		}
		domain.SortBlocks(blocks)

		index := domain.IndexOfBlock(blocks, c.AfterID) + 1
		if index == 0 {
			index = len(blocks)
		}

		ts := now()
		created = &domain.Block{
			PageID:    c.PageID,
			Type:      c.Type,
			Position:  index,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if c.Type == domain.BlockTypeChecklist {
			unchecked := false
			created.Checked = &unchecked
		}
		if _, err := tx.AddBlock(ctx, created); err != nil {
			return err
		}

		for i := range blocks {
			want := i
			if i >= index {
				want = i + 1
			}
			if blocks[i].Position == want {
				continue
			}
			blocks[i].Position = want
			blocks[i].UpdatedAt = ts
			if err := tx.UpdateBlock(ctx, &blocks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert block: %w", err)
	}

	return &BlockResult{
		Block:   created,
		Message: fmt.Sprintf("Inserted block %d at position %d", created.ID, created.Position),
	}, nil
}

// UpdateBlockCommand merges a partial update into a block
type UpdateBlockCommand struct {
	store ports.Collections
	ID    int64
	Patch domain.BlockPatch
}

// NewUpdateBlockCommand creates a new UpdateBlockCommand
func NewUpdateBlockCommand(store ports.Collections, id int64, patch domain.BlockPatch) *UpdateBlockCommand {
	return &UpdateBlockCommand{store: store, ID: id, Patch: patch}
}

// Validate checks the block ID and patch
func (c *UpdateBlockCommand) Validate() error {
	if c.ID <= 0 {
		return &application.ValidationError{Field: "id", Message: "block ID is required"}
	}
	if c.Patch.Type != nil && !c.Patch.Type.Valid() {
		return &application.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown block type %s", *c.Patch.Type),
		}
	}
	if c.Patch.Position != nil && *c.Patch.Position < 0 {
		return &application.ValidationError{Field: "position", Message: "position must not be negative"}
	}
	return nil
}

// Execute runs the update block command. Updating a missing block is a
// no-op and returns a nil block.
func (c *UpdateBlockCommand) Execute(ctx context.Context) (*BlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	block, err := c.store.GetBlock(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load block: %w", err)
	}
	if block == nil {
		return &BlockResult{Message: fmt.Sprintf("Block %d does not exist", c.ID)}, nil
	}

	c.Patch.Apply(block, now())
	if err := c.store.UpdateBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to update block: %w", err)
	}

	return &BlockResult{
		Block:   block,
		Message: fmt.Sprintf("Updated block %d", block.ID),
	}, nil
}

// SetBlockTypeCommand applies a slash command selection: the type changes
// and the "/query" content is cleared in one update
type SetBlockTypeCommand struct {
	store ports.Collections
	ID    int64
	Type  domain.BlockType
}

// NewSetBlockTypeCommand creates a new SetBlockTypeCommand
func NewSetBlockTypeCommand(store ports.Collections, id int64, blockType domain.BlockType) *SetBlockTypeCommand {
	return &SetBlockTypeCommand{store: store, ID: id, Type: blockType}
}

// Execute runs the set block type command
func (c *SetBlockTypeCommand) Execute(ctx context.Context) (*BlockResult, error) {
	empty := ""
	patch := domain.BlockPatch{Type: &c.Type, Content: &empty}
	if c.Type == domain.BlockTypeChecklist {
		unchecked := false
		patch.Checked = &unchecked
	}
	return NewUpdateBlockCommand(c.store, c.ID, patch).Execute(ctx)
}

// ToggleCheckedCommand flips the checked state of a checklist block
type ToggleCheckedCommand struct {
	store ports.Collections
	ID    int64
}

// NewToggleCheckedCommand creates a new ToggleCheckedCommand
func NewToggleCheckedCommand(store ports.Collections, id int64) *ToggleCheckedCommand {
	return &ToggleCheckedCommand{store: store, ID: id}
}

// Execute runs the toggle command
func (c *ToggleCheckedCommand) Execute(ctx context.Context) (*BlockResult, error) {
	block, err := c.store.GetBlock(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load block: %w", err)
	}
	if block == nil {
		return nil, &application.NotFoundError{Kind: "block", ID: c.ID}
	}
	if block.Type != domain.BlockTypeChecklist {
		return nil, fmt.Errorf("%w: block %d is not a checklist", application.ErrInvalidOperation, c.ID)
	}

	checked := !block.IsChecked()
	return NewUpdateBlockCommand(c.store, c.ID, domain.BlockPatch{Checked: &checked}).Execute(ctx)
}

// DeleteBlockCommand removes a single block
type DeleteBlockCommand struct {
	store ports.Collections
	ID    int64
}

// NewDeleteBlockCommand creates a new DeleteBlockCommand
func NewDeleteBlockCommand(store ports.Collections, id int64) *DeleteBlockCommand {
	return &DeleteBlockCommand{store: store, ID: id}
}

// Execute runs the delete block command
func (c *DeleteBlockCommand) Execute(ctx context.Context) (*BlockResult, error) {
	if c.ID <= 0 {
		return nil, &application.ValidationError{Field: "id", Message: "block ID is required"}
	}
	if err := c.store.DeleteBlock(ctx, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete block: %w", err)
	}
	return &BlockResult{Message: fmt.Sprintf("Deleted block %d", c.ID)}, nil
}

// ListBlocksCommand lists the blocks of a page in position order
type ListBlocksCommand struct {
	store  ports.Collections
	PageID int64
}

// NewListBlocksCommand creates a new ListBlocksCommand
func NewListBlocksCommand(store ports.Collections, pageID int64) *ListBlocksCommand {
	return &ListBlocksCommand{store: store, PageID: pageID}
}

// Execute runs the list blocks command
func (c *ListBlocksCommand) Execute(ctx context.Context) ([]domain.Block, error) {
	blocks, err := c.store.ListBlocksByPage(ctx, c.PageID)
	if err != nil {
		return nil, err
	}
	domain.SortBlocks(blocks)
	return blocks, nil
}

// ReorderBlocksCommand sets each listed block's position to its index
type ReorderBlocksCommand struct {
	store    ports.Store
	PageID   int64
	BlockIDs []int64
}

// NewReorderBlocksCommand creates a new ReorderBlocksCommand
func NewReorderBlocksCommand(store ports.Store, pageID int64, blockIDs []int64) *ReorderBlocksCommand {
	return &ReorderBlocksCommand{store: store, PageID: pageID, BlockIDs: blockIDs}
}

// Validate rejects duplicate IDs
func (c *ReorderBlocksCommand) Validate() error {
	seen := make(map[int64]bool, len(c.BlockIDs))
	for _, id := range c.BlockIDs {
		if seen[id] {
			return &application.ValidationError{
				Field:   "blockIds",
				Message: fmt.Sprintf("block %d listed twice", id),
			}
		}
		seen[id] = true
	}
	return nil
}

// Execute runs the reorder command. IDs that do not belong to the page are
// rejected.
func (c *ReorderBlocksCommand) Execute(ctx context.Context) (*BlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		ts := now()
		for i, id := range c.BlockIDs {
			block, err := tx.GetBlock(ctx, id)
			if err != nil {
				return err
			}
			if block == nil || block.PageID != c.PageID {
				return &application.NotFoundError{Kind: "block", ID: id}
			}
			block.Position = i
			block.UpdatedAt = ts
			if err := tx.UpdateBlock(ctx, block); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder blocks: %w", err)
	}

	return &BlockResult{Message: fmt.Sprintf("Reordered %d block(s) on page %d", len(c.BlockIDs), c.PageID)}, nil
}
