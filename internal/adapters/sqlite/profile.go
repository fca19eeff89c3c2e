package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"opennoution/internal/domain"
)

// GetUser returns the stored profile, or nil when none exists
func (c collections) GetUser(ctx context.Context) (*domain.UserProfile, error) {
	var (
		user    domain.UserProfile
		created string
	)
	err := c.q.QueryRowContext(ctx, `
		SELECT id, name, email, occupation, purpose, created_at
		FROM user ORDER BY rowid LIMIT 1
	`).Scan(&user.ID, &user.Name, &user.Email, &user.Occupation, &user.Purpose, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddUser inserts a profile record
func (c collections) AddUser(ctx context.Context, user *domain.UserProfile) error {
	_, err := c.q.ExecContext(ctx, `
		INSERT INTO user (id, name, email, occupation, purpose, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, user.Occupation, user.Purpose, formatTime(user.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// ClearUser removes every profile record
func (c collections) ClearUser(ctx context.Context) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM user`)
	return err
}

// GetSetting returns the setting for key, or nil when unset
func (c collections) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	var raw string
	err := c.q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSetting(key, raw)
}

// PutSetting inserts or replaces a setting
func (c collections) PutSetting(ctx context.Context, setting domain.Setting) error {
	raw, err := json.Marshal(setting.Value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", setting.Key, err)
	}
	_, err = c.q.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, setting.Key, string(raw))
	return err
}

// ListSettings returns every setting ordered by key
func (c collections) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []domain.Setting{}
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		setting, err := decodeSetting(key, raw)
		if err != nil {
			return nil, err
		}
		settings = append(settings, *setting)
	}
	return settings, rows.Err()
}

// ClearSettings removes every setting
func (c collections) ClearSettings(ctx context.Context) error {
	_, err := c.q.ExecContext(ctx, `DELETE FROM settings`)
	return err
}

func decodeSetting(key, raw string) (*domain.Setting, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return &domain.Setting{Key: key, Value: value}, nil
}
