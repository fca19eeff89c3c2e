package commands

import (
	"context"

	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// BuildTreeCommand builds the page tree for navigation
type BuildTreeCommand struct {
	store    ports.Collections
	Expanded map[int64]bool
}

// NewBuildTreeCommand creates a new BuildTreeCommand. Pages listed in
// expanded start out expanded.
func NewBuildTreeCommand(store ports.Collections, expanded map[int64]bool) *BuildTreeCommand {
	return &BuildTreeCommand{store: store, Expanded: expanded}
}

// Execute runs the build tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	pages, err := c.store.ListPages(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(pages, c.Expanded), nil
}
