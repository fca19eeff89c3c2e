package commands

import (
	"context"
	"fmt"

	"opennoution/internal/application"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// ExportCommand snapshots all four collections into a backup envelope.
// The collections are read one after another, without snapshot isolation.
type ExportCommand struct {
	store ports.Collections
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(store ports.Collections) *ExportCommand {
	return &ExportCommand{store: store}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*domain.BackupEnvelope, error) {
	pages, err := c.store.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export pages: %w", err)
	}
	blocks, err := c.store.ListBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export blocks: %w", err)
	}
	user, err := c.store.GetUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export user: %w", err)
	}
	settings, err := c.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}

	return &domain.BackupEnvelope{
		Version:    domain.BackupVersion,
		ExportDate: now(),
		Data: domain.BackupData{
			Pages:    pages,
			Blocks:   blocks,
			User:     user,
			Settings: settings,
		},
	}, nil
}

// ImportResult contains the counts restored by an import
type ImportResult struct {
	Pages    int
	Blocks   int
	User     bool
	Settings int
	Message  string
}

// ImportCommand replaces the whole database with a backup envelope. The
// clear and the inserts run in one transaction, so a failed import leaves
// the previous data untouched.
type ImportCommand struct {
	store    ports.Store
	Envelope *domain.BackupEnvelope
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.Store, env *domain.BackupEnvelope) *ImportCommand {
	return &ImportCommand{store: store, Envelope: env}
}

// Validate checks that an envelope was given
func (c *ImportCommand) Validate() error {
	if c.Envelope == nil {
		return fmt.Errorf("%w: no backup data", application.ErrMalformedBackup)
	}
	return nil
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	data := c.Envelope.Data
	result := &ImportResult{}
	err := ports.WithTx(ctx, c.store, func(tx ports.Collections) error {
		if err := tx.ClearBlocks(ctx); err != nil {
			return err
		}
		if err := tx.ClearPages(ctx); err != nil {
			return err
		}
		if err := tx.ClearUser(ctx); err != nil {
			return err
		}
		if err := tx.ClearSettings(ctx); err != nil {
			return err
		}

		for i := range data.Pages {
			page := data.Pages[i]
			if _, err := tx.AddPage(ctx, &page); err != nil {
				return err
			}
			result.Pages++
		}
		for i := range data.Blocks {
			block := data.Blocks[i]
			if _, err := tx.AddBlock(ctx, &block); err != nil {
				return err
			}
			result.Blocks++
		}
		if data.User != nil {
			user := *data.User
			if err := tx.AddUser(ctx, &user); err != nil {
				return err
			}
			result.User = true
		}
		for _, setting := range data.Settings {
			if err := tx.PutSetting(ctx, setting); err != nil {
				return err
			}
			result.Settings++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrImportFailed, err)
	}

	result.Message = fmt.Sprintf("Imported %d page(s), %d block(s), %d setting(s)", result.Pages, result.Blocks, result.Settings)
	return result, nil
}
