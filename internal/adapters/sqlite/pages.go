package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"opennoution/internal/domain"
)

const pageColumns = `id, title, parent_id, position, created_at, updated_at`

// AddPage inserts a page and returns its ID
func (c collections) AddPage(ctx context.Context, page *domain.Page) (int64, error) {
	var parent sql.NullInt64
	if page.ParentID != nil {
		parent = sql.NullInt64{Int64: *page.ParentID, Valid: true}
	}

	var (
		res sql.Result
		err error
	)
	if page.ID != 0 {
		res, err = c.q.ExecContext(ctx, `
			INSERT INTO pages (id, title, parent_id, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, page.ID, page.Title, parent, page.Position, formatTime(page.CreatedAt), formatTime(page.UpdatedAt))
	} else {
		res, err = c.q.ExecContext(ctx, `
			INSERT INTO pages (title, parent_id, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, page.Title, parent, page.Position, formatTime(page.CreatedAt), formatTime(page.UpdatedAt))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	page.ID = id
	return id, nil
}

// GetPage retrieves a page by ID
func (c collections) GetPage(ctx context.Context, id int64) (*domain.Page, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// UpdatePage overwrites the stored page with the same ID
func (c collections) UpdatePage(ctx context.Context, page *domain.Page) error {
	var parent sql.NullInt64
	if page.ParentID != nil {
		parent = sql.NullInt64{Int64: *page.ParentID, Valid: true}
	}
	_, err := c.q.ExecContext(ctx, `
		UPDATE pages
		SET title = ?, parent_id = ?, position = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, page.Title, parent, page.Position, formatTime(page.CreatedAt), formatTime(page.UpdatedAt), page.ID)
	return err
}

// DeletePage removes a single page record
func (c collections) DeletePage(ctx context.Context, id int64) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}

// ListPages returns every page ordered by position
func (c collections) ListPages(ctx context.Context) ([]domain.Page, error) {
	return c.queryPages(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY position, id`)
}

// ListPagesByParent returns the children of parentID, or root pages for nil
func (c collections) ListPagesByParent(ctx context.Context, parentID *int64) ([]domain.Page, error) {
	if parentID == nil {
		return c.queryPages(ctx, `SELECT `+pageColumns+` FROM pages WHERE parent_id IS NULL ORDER BY position, id`)
	}
	return c.queryPages(ctx, `SELECT `+pageColumns+` FROM pages WHERE parent_id = ? ORDER BY position, id`, *parentID)
}

// ClearPages removes every page
func (c collections) ClearPages(ctx context.Context) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM pages`)
	return err
}

func (c collections) queryPages(ctx context.Context, query string, args ...any) ([]domain.Page, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []domain.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(s scanner) (*domain.Page, error) {
	var (
		page             domain.Page
		parent           sql.NullInt64
		created, updated string
	)
	if err := s.Scan(&page.ID, &page.Title, &parent, &page.Position, &created, &updated); err != nil {
		return nil, err
	}
	if parent.Valid {
		page.ParentID = domain.Int64Ptr(parent.Int64)
	}

	var err error
	if page.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if page.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &page, nil
}
