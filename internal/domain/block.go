package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// BlockType is the rendering kind of a block
type BlockType string

const (
	BlockTypeText      BlockType = "text"
	BlockTypeH1        BlockType = "h1"
	BlockTypeH2        BlockType = "h2"
	BlockTypeH3        BlockType = "h3"
	BlockTypeQuote     BlockType = "quote"
	BlockTypeCode      BlockType = "code"
	BlockTypeList      BlockType = "list"
	BlockTypeChecklist BlockType = "checklist"
)

// BlockTypes lists every supported block type in menu order
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeH1,
	BlockTypeH2,
	BlockTypeH3,
	BlockTypeList,
	BlockTypeChecklist,
	BlockTypeQuote,
	BlockTypeCode,
}

// String returns the wire name of the block type
func (t BlockType) String() string {
	return string(t)
}

// Valid reports whether t is one of the supported block types
func (t BlockType) Valid() bool {
	return slices.Contains(BlockTypes, t)
}

// ParseBlockType converts a string into a BlockType
func ParseBlockType(s string) (BlockType, error) {
	t := BlockType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown block type: %q", s)
	}
	return t, nil
}

// Block is a typed content unit belonging to exactly one page
type Block struct {
	ID        int64     `json:"id"`
	PageID    int64     `json:"pageId"`
	Type      BlockType `json:"type"`
	Content   string    `json:"content"`
	Checked   *bool     `json:"checked,omitempty"` // only meaningful for checklist blocks
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsChecked reports the checklist state, treating an unset flag as false
func (b *Block) IsChecked() bool {
	return b.Checked != nil && *b.Checked
}

// BlockPatch holds a partial block update. Nil fields are left untouched.
type BlockPatch struct {
	Type     *BlockType
	Content  *string
	Checked  *bool
	Position *int
}

// IsEmpty reports whether the patch carries no fields
func (bp BlockPatch) IsEmpty() bool {
	return bp.Type == nil && bp.Content == nil && bp.Checked == nil && bp.Position == nil
}

// Apply merges the patch into the block and stamps UpdatedAt
func (bp BlockPatch) Apply(b *Block, now time.Time) {
	if bp.Type != nil {
		b.Type = *bp.Type
	}
	if bp.Content != nil {
		b.Content = *bp.Content
	}
	if bp.Checked != nil {
		checked := *bp.Checked
		b.Checked = &checked
	}
	if bp.Position != nil {
		b.Position = *bp.Position
	}
	b.UpdatedAt = now
}

// SortBlocks orders blocks by position, then by ID
func SortBlocks(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

// IndexOfBlock returns the index of the block with the given ID, or -1
func IndexOfBlock(blocks []Block, id int64) int {
	return slices.IndexFunc(blocks, func(b Block) bool { return b.ID == id })
}
