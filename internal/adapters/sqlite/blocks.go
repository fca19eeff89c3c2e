package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"opennoution/internal/domain"
)

const blockColumns = `id, page_id, type, content, checked, position, created_at, updated_at`

func checkedValue(checked *bool) sql.NullBool {
	if checked == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *checked, Valid: true}
}

// AddBlock inserts a block and returns its ID
func (c collections) AddBlock(ctx context.Context, block *domain.Block) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if block.ID != 0 {
		res, err = c.q.ExecContext(ctx, `
			INSERT INTO blocks (id, page_id, type, content, checked, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, block.ID, block.PageID, block.Type.String(), block.Content, checkedValue(block.Checked),
			block.Position, formatTime(block.CreatedAt), formatTime(block.UpdatedAt))
	} else {
		res, err = c.q.ExecContext(ctx, `
			INSERT INTO blocks (page_id, type, content, checked, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, block.PageID, block.Type.String(), block.Content, checkedValue(block.Checked),
			block.Position, formatTime(block.CreatedAt), formatTime(block.UpdatedAt))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert block: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	block.ID = id
	return id, nil
}

// GetBlock retrieves a block by ID
func (c collections) GetBlock(ctx context.Context, id int64) (*domain.Block, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+blockColumns+` FROM blocks WHERE id = ?`, id)
	block, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return block, nil
}

// UpdateBlock overwrites the stored block with the same ID
func (c collections) UpdateBlock(ctx context.Context, block *domain.Block) error {
	_, err := c.q.ExecContext(ctx, `
		UPDATE blocks
		SET page_id = ?, type = ?, content = ?, checked = ?, position = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, block.PageID, block.Type.String(), block.Content, checkedValue(block.Checked), block.Position,
		formatTime(block.CreatedAt), formatTime(block.UpdatedAt), block.ID)
	return err
}

// DeleteBlock removes a block by ID
func (c collections) DeleteBlock(ctx context.Context, id int64) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	return err
}

// ListBlocks returns every block
func (c collections) ListBlocks(ctx context.Context) ([]domain.Block, error) {
	return c.queryBlocks(ctx, `SELECT `+blockColumns+` FROM blocks ORDER BY page_id, position, id`)
}

// ListBlocksByPage returns the blocks of a page in render order
func (c collections) ListBlocksByPage(ctx context.Context, pageID int64) ([]domain.Block, error) {
	return c.queryBlocks(ctx, `SELECT `+blockColumns+` FROM blocks WHERE page_id = ? ORDER BY position, id`, pageID)
}

// CountBlocksByPage returns the number of blocks owned by a page
func (c collections) CountBlocksByPage(ctx context.Context, pageID int64) (int, error) {
	var n int
	err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocks WHERE page_id = ?`, pageID).Scan(&n)
	return n, err
}

// DeleteBlocksByPage removes every block owned by a page
func (c collections) DeleteBlocksByPage(ctx context.Context, pageID int64) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM blocks WHERE page_id = ?`, pageID)
	return err
}

// ClearBlocks removes every block
func (c collections) ClearBlocks(ctx context.Context) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM blocks`)
	return err
}

func (c collections) queryBlocks(ctx context.Context, query string, args ...any) ([]domain.Block, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := []domain.Block{}
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *block)
	}
	return blocks, rows.Err()
}

func scanBlock(s scanner) (*domain.Block, error) {
	var (
		block            domain.Block
		blockType        string
		checked          sql.NullBool
		created, updated string
	)
	err := s.Scan(&block.ID, &block.PageID, &blockType, &block.Content, &checked,
		&block.Position, &created, &updated)
	if err != nil {
		return nil, err
	}

	block.Type = domain.BlockType(blockType)
	if checked.Valid {
		v := checked.Bool
		block.Checked = &v
	}
	if block.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if block.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &block, nil
}
