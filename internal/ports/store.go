package ports

import (
	"context"
	"errors"

	"opennoution/internal/domain"
)

// ErrStoreInit is returned when the store could not be opened, even after
// recreating it from scratch. Callers treat it as fatal.
var ErrStoreInit = errors.New("store initialization failed")

// PageCollection stores pages keyed by auto-assigned IDs
type PageCollection interface {
	// AddPage inserts a page. A zero ID is assigned by the store; a non-zero
	// ID is kept as-is (used when restoring backups).
	AddPage(ctx context.Context, page *domain.Page) (int64, error)
	// GetPage returns nil without error when the page does not exist
	GetPage(ctx context.Context, id int64) (*domain.Page, error)
	// UpdatePage writes every field of page. Missing records are ignored.
	UpdatePage(ctx context.Context, page *domain.Page) error
	DeletePage(ctx context.Context, id int64) error
	// ListPages returns all pages ordered by position
	ListPages(ctx context.Context) ([]domain.Page, error)
	// ListPagesByParent returns the children of parentID ordered by
	// position. A nil parentID selects root pages.
	ListPagesByParent(ctx context.Context, parentID *int64) ([]domain.Page, error)
	ClearPages(ctx context.Context) error
}

// BlockCollection stores blocks keyed by auto-assigned IDs
type BlockCollection interface {
	AddBlock(ctx context.Context, block *domain.Block) (int64, error)
	GetBlock(ctx context.Context, id int64) (*domain.Block, error)
	UpdateBlock(ctx context.Context, block *domain.Block) error
	DeleteBlock(ctx context.Context, id int64) error
	ListBlocks(ctx context.Context) ([]domain.Block, error)
	// ListBlocksByPage returns the blocks of a page ordered by position
	ListBlocksByPage(ctx context.Context, pageID int64) ([]domain.Block, error)
	CountBlocksByPage(ctx context.Context, pageID int64) (int, error)
	DeleteBlocksByPage(ctx context.Context, pageID int64) error
	ClearBlocks(ctx context.Context) error
}

// UserCollection stores the singleton user profile
type UserCollection interface {
	// GetUser returns the first stored profile, or nil
	GetUser(ctx context.Context) (*domain.UserProfile, error)
	AddUser(ctx context.Context, user *domain.UserProfile) error
	ClearUser(ctx context.Context) error
}

// SettingCollection stores key/value settings
type SettingCollection interface {
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	// PutSetting inserts or replaces the setting with the same key
	PutSetting(ctx context.Context, setting domain.Setting) error
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	ClearSettings(ctx context.Context) error
}

// Collections groups the four record collections
type Collections interface {
	PageCollection
	BlockCollection
	UserCollection
	SettingCollection
}

// Store is the durable local database
type Store interface {
	Collections

	// Begin starts a transaction for multi-record sequences
	Begin(ctx context.Context) (StoreTx, error)
	Path() string
	Close() error
}

// StoreTx is a transaction over the same collections
type StoreTx interface {
	Collections

	Commit() error
	Rollback() error
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back when fn returns an error
func WithTx(ctx context.Context, s Store, fn func(Collections) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
