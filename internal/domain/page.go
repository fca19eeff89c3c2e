package domain

import (
	"slices"
	"time"
)

// DefaultPageTitle is used when a page is created without a title
const DefaultPageTitle = "Untitled"

// Page is a titled document node. Pages form a forest through ParentID.
type Page struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ParentID  *int64    `json:"parentId"` // nil for root pages
	Position  int       `json:"position"` // sibling order, not necessarily contiguous
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsRoot reports whether the page has no parent
func (p *Page) IsRoot() bool {
	return p.ParentID == nil
}

// HasParent reports whether the page belongs to the given parent group.
// A nil parentID selects the root group.
func (p *Page) HasParent(parentID *int64) bool {
	if parentID == nil {
		return p.ParentID == nil
	}
	return p.ParentID != nil && *p.ParentID == *parentID
}

// PagePatch holds a partial page update. Nil fields are left untouched.
type PagePatch struct {
	Title    *string
	ParentID **int64 // set to a pointer to nil to move a page to the root
	Position *int
}

// Apply merges the patch into the page and stamps UpdatedAt
func (pp PagePatch) Apply(p *Page, now time.Time) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.ParentID != nil {
		p.ParentID = *pp.ParentID
	}
	if pp.Position != nil {
		p.Position = *pp.Position
	}
	p.UpdatedAt = now
}

// NextPosition returns one greater than the highest position among pages,
// or 0 when there are none
func NextPosition(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	return slices.Max(positions) + 1
}

// SortPages orders pages by position, then by ID for stable output
func SortPages(pages []Page) {
	slices.SortStableFunc(pages, func(a, b Page) int {
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

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
