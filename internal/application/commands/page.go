package commands

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"opennoution/internal/application"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// PageResult contains the page touched by a page command
type PageResult struct {
	Page    *domain.Page
	Message string
}

// CreatePageCommand creates a page at the end of its sibling group
type CreatePageCommand struct {
	store    ports.Collections
	Title    string
	ParentID *int64
}

// NewCreatePageCommand creates a new CreatePageCommand
func NewCreatePageCommand(store ports.Collections, title string, parentID *int64) *CreatePageCommand {
	return &CreatePageCommand{
		store:    store,
		Title:    title,
		ParentID: parentID,
	}
}

// Validate checks the title length and parent ID
func (c *CreatePageCommand) Validate() error {
	return application.Validate(c,
		validation.Field(&c.Title, validation.RuneLength(0, application.MaxTitleLength)),
		validation.Field(&c.ParentID, validation.NilOrNotEmpty, validation.Min(int64(1))),
	)
}

// Execute runs the create page command
func (c *CreatePageCommand) Execute(ctx context.Context) (*PageResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.ParentID != nil {
		parent, err := c.store.GetPage(ctx, *c.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent page: %w", err)
		}
		if parent == nil {
			return nil, &application.NotFoundError{Kind: "page", ID: *c.ParentID}
		}
	}

	siblings, err := c.store.ListPagesByParent(ctx, c.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sibling pages: %w", err)
	}
	positions := make([]int, len(siblings))
	for i, p := range siblings {
		positions[i] = p.Position
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = domain.DefaultPageTitle
	}

	ts := now()
	page := &domain.Page{
		Title:     title,
		ParentID:  c.ParentID,
		Position:  domain.NextPosition(positions),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := c.store.AddPage(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &PageResult{
		Page:    page,
		Message: fmt.Sprintf("Created page %d: %s", page.ID, page.Title),
	}, nil
}

// GetPageCommand loads a single page. A missing page yields a nil page.
type GetPageCommand struct {
	store ports.Collections
	ID    int64
}

// NewGetPageCommand creates a new GetPageCommand
func NewGetPageCommand(store ports.Collections, id int64) *GetPageCommand {
	return &GetPageCommand{store: store, ID: id}
}

// Execute runs the get page command
func (c *GetPageCommand) Execute(ctx context.Context) (*domain.Page, error) {
	return c.store.GetPage(ctx, c.ID)
}

// ListPagesCommand lists every page ordered by position, then ID
type ListPagesCommand struct {
	store ports.Collections
}

// NewListPagesCommand creates a new ListPagesCommand
func NewListPagesCommand(store ports.Collections) *ListPagesCommand {
	return &ListPagesCommand{store: store}
}

// Execute runs the list pages command
func (c *ListPagesCommand) Execute(ctx context.Context) ([]domain.Page, error) {
	pages, err := c.store.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortPages(pages)
	return pages, nil
}

// ListChildPagesCommand lists the children of a page, or the root pages
// when ParentID is nil
type ListChildPagesCommand struct {
	store    ports.Collections
	ParentID *int64
}

// NewListChildPagesCommand creates a new ListChildPagesCommand
func NewListChildPagesCommand(store ports.Collections, parentID *int64) *ListChildPagesCommand {
	return &ListChildPagesCommand{store: store, ParentID: parentID}
}

// Execute runs the list child pages command
func (c *ListChildPagesCommand) Execute(ctx context.Context) ([]domain.Page, error) {
	return c.store.ListPagesByParent(ctx, c.ParentID)
}

// UpdatePageCommand merges a partial update into a page
type UpdatePageCommand struct {
	store ports.Collections
	ID    int64
	Patch domain.PagePatch
}

// NewUpdatePageCommand creates a new UpdatePageCommand
func NewUpdatePageCommand(store ports.Collections, id int64, patch domain.PagePatch) *UpdatePageCommand {
	return &UpdatePageCommand{store: store, ID: id, Patch: patch}
}

// Validate checks the patch
func (c *UpdatePageCommand) Validate() error {
	if c.ID <= 0 {
		return &application.ValidationError{Field: "id", Message: "page ID is required"}
	}
	if c.Patch.Title != nil && len([]rune(*c.Patch.Title)) > application.MaxTitleLength {
		return &application.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", application.MaxTitleLength),
		}
	}
	if c.Patch.ParentID != nil && *c.Patch.ParentID != nil && **c.Patch.ParentID == c.ID {
		return &application.CycleError{PageID: c.ID, ParentID: c.ID}
	}
	return nil
}

// Execute runs the update page command. Updating a missing page is a no-op
// and returns a nil page.
func (c *UpdatePageCommand) Execute(ctx context.Context) (*PageResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	page, err := c.store.GetPage(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	if page == nil {
		return &PageResult{Message: fmt.Sprintf("Page %d does not exist", c.ID)}, nil
	}

	if c.Patch.ParentID != nil && *c.Patch.ParentID != nil {
		if err := c.checkReparent(ctx, **c.Patch.ParentID); err != nil {
			return nil, err
		}
	}

	c.Patch.Apply(page, now())
	if err := c.store.UpdatePage(ctx, page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	return &PageResult{
		Page:    page,
		Message: fmt.Sprintf("Updated page %d", page.ID),
	}, nil
}

// checkReparent refuses a new parent that is missing or sits below the page
func (c *UpdatePageCommand) checkReparent(ctx context.Context, parentID int64) error {
	parent, err := c.store.GetPage(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to load parent page: %w", err)
	}
	if parent == nil {
		return &application.NotFoundError{Kind: "page", ID: parentID}
	}

	pages, err := c.store.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	below, _ := domain.Descendants(pages, c.ID)
	for _, id := range below {
		if id == parentID {
			return &application.CycleError{PageID: c.ID, ParentID: parentID}
		}
	}
	return nil
}

// DeletePageResult contains the result of a cascading page delete
type DeletePageResult struct {
	DeletedPages  []int64
	DeletedBlocks int
	Message       string
}

// DeletePageCommand deletes a page, its blocks and all descendant pages.
// The whole cascade runs in one transaction.
type DeletePageCommand struct {
	store ports.Store
	ID    int64
}

// NewDeletePageCommand creates a new DeletePageCommand
func NewDeletePageCommand(store ports.Store, id int64) *DeletePageCommand {
	return &DeletePageCommand{store: store, ID: id}
}

// Validate checks the page ID
func (c *DeletePageCommand) Validate() error {
	if c.ID <= 0 {
		return &application.ValidationError{Field: "id", Message: "page ID is required"}
	}
	return nil
}

// Execute runs the delete page command
func (c *DeletePageCommand) Execute(ctx context.Context) (*DeletePageResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &DeletePageResult{}
	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		page, err := tx.GetPage(ctx, c.ID)
		if err != nil {
			return err
		}
		if page == nil {
			return &application.NotFoundError{Kind: "page", ID: c.ID}
		}
		visited := make(map[int64]bool)
		return c.deleteRecursive(ctx, tx, c.ID, visited, result)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete page %d: %w", c.ID, err)
	}

	result.Message = fmt.Sprintf("Deleted %d page(s) and %d block(s)", len(result.DeletedPages), result.DeletedBlocks)
	return result, nil
}

// deleteRecursive removes blocks first, then children depth-first, then
// the page record itself
func (c *DeletePageCommand) deleteRecursive(ctx context.Context, tx ports.Collections, id int64, visited map[int64]bool, result *DeletePageResult) error {
	if visited[id] {
		return &application.CycleError{PageID: id, ParentID: id}
	}
	visited[id] = true

	count, err := tx.CountBlocksByPage(ctx, id)
	if err != nil {
		return err
	}
	if err := tx.DeleteBlocksByPage(ctx, id); err != nil {
		return err
	}
	result.DeletedBlocks += count

	children, err := tx.ListPagesByParent(ctx, &id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := c.deleteRecursive(ctx, tx, child.ID, visited, result); err != nil {
			return err
		}
	}

	if err := tx.DeletePage(ctx, id); err != nil {
		return err
	}
	result.DeletedPages = append(result.DeletedPages, id)
	return nil
}
