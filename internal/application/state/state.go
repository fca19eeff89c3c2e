// Package state holds the in-memory view of the notebook shared by the
// front ends. Every mutation goes through the commands package and is
// followed by a full Refresh, so the cache never drifts from the store.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"opennoution/internal/application/commands"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// Snapshot is a copy of the cached state, safe to read without locking
type Snapshot struct {
	Pages              []domain.Page
	CurrentPageID      *int64
	CurrentPage        *domain.Page
	Blocks             []domain.Block
	User               *domain.UserProfile
	OnboardingComplete bool
}

// State caches the page list, the selected page with its blocks, the user
// profile and the onboarding flag
type State struct {
	mu    sync.RWMutex
	store ports.Store
	log   zerolog.Logger

	pages              []domain.Page
	currentPageID      *int64
	currentPage        *domain.Page
	blocks             []domain.Block
	user               *domain.UserProfile
	onboardingComplete bool

	// refreshSeq numbers Refresh calls; appliedSeq is the newest one written
	refreshSeq uint64
	appliedSeq uint64
}

// New creates an empty State over store. Call Load before reading.
func New(store ports.Store, log zerolog.Logger) *State {
	return &State{store: store, log: log}
}

// Store returns the underlying store
func (s *State) Store() ports.Store {
	return s.store
}

// Load reads the profile and onboarding flag, then refreshes pages
func (s *State) Load(ctx context.Context) error {
	user, err := commands.NewGetUserProfileCommand(s.store).Execute(ctx)
	if err != nil {
		return err
	}
	done, err := commands.IsOnboardingComplete(ctx, s.store)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.onboardingComplete = done
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh re-queries the page list and, when a page is selected, that page
// and its blocks. A selected page that no longer exists is deselected.
//
// Refreshes may overlap. Results older than the last applied refresh are
// dropped, and the page and blocks are only written while the selection
// they were read for is still current.
func (s *State) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	current := copyID(s.currentPageID)
	s.mu.Unlock()

	pages, err := commands.NewListPagesCommand(s.store).Execute(ctx)
	if err != nil {
		return err
	}

	var (
		page   *domain.Page
		blocks []domain.Block
	)
	if current != nil {
		page, err = commands.NewGetPageCommand(s.store, *current).Execute(ctx)
		if err != nil {
			return err
		}
		if page != nil {
			blocks, err = commands.NewListBlocksCommand(s.store, page.ID).Execute(ctx)
			if err != nil {
				return err
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		s.log.Debug().Uint64("seq", seq).Msg("dropping stale refresh")
		return nil
	}
	s.appliedSeq = seq
	s.pages = pages
	if !sameID(s.currentPageID, current) {
		return nil
	}
	if current != nil && page == nil {
		s.log.Debug().Int64("page_id", *current).Msg("selected page is gone, clearing selection")
		s.currentPageID = nil
	}
	s.currentPage = page
	s.blocks = blocks
	return nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Snapshot returns a copy of the cached state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Pages:              append([]domain.Page(nil), s.pages...),
		Blocks:             append([]domain.Block(nil), s.blocks...),
		OnboardingComplete: s.onboardingComplete,
	}
	if s.currentPageID != nil {
		id := *s.currentPageID
		snap.CurrentPageID = &id
	}
	if s.currentPage != nil {
		p := *s.currentPage
		snap.CurrentPage = &p
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Pages returns the cached page list
func (s *State) Pages() []domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Page(nil), s.pages...)
}

// CurrentPage returns the selected page, or nil
func (s *State) CurrentPage() *domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentPage == nil {
		return nil
	}
	p := *s.currentPage
	return &p
}

// Blocks returns the blocks of the selected page
func (s *State) Blocks() []domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Block(nil), s.blocks...)
}

// OnboardingComplete reports the cached onboarding flag
func (s *State) OnboardingComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboardingComplete
}

// SelectPage makes id the current page and loads its blocks. A nil id
// clears the selection.
func (s *State) SelectPage(ctx context.Context, id *int64) error {
	s.mu.Lock()
	if id == nil {
		s.currentPageID = nil
	} else {
		v := *id
		s.currentPageID = &v
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// CreatePage creates a page and refreshes
func (s *State) CreatePage(ctx context.Context, title string, parentID *int64) (*domain.Page, error) {
	res, err := commands.NewCreatePageCommand(s.store, title, parentID).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return res.Page, s.Refresh(ctx)
}

// UpdatePage patches a page and refreshes
func (s *State) UpdatePage(ctx context.Context, id int64, patch domain.PagePatch) error {
	if _, err := commands.NewUpdatePageCommand(s.store, id, patch).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// DeletePage deletes a page with its descendants and refreshes. Deleting the
// selected page, or one of its ancestors, clears the selection.
func (s *State) DeletePage(ctx context.Context, id int64) error {
	res, err := commands.NewDeletePageCommand(s.store, id).Execute(ctx)
	if err != nil {
		return err
	}
	s.log.Info().Int64("page_id", id).Ints64("deleted", res.DeletedPages).Int("blocks", res.DeletedBlocks).Msg("page deleted")
	return s.Refresh(ctx)
}

// CreateBlock appends a block to a page and refreshes
func (s *State) CreateBlock(ctx context.Context, pageID int64, blockType domain.BlockType, content string) (*domain.Block, error) {
	res, err := commands.NewCreateBlockCommand(s.store, pageID, blockType, content, nil).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return res.Block, s.Refresh(ctx)
}

// InsertBlockAfter creates an empty block right after afterID and refreshes
func (s *State) InsertBlockAfter(ctx context.Context, pageID, afterID int64, blockType domain.BlockType) (*domain.Block, error) {
	res, err := commands.NewInsertBlockAfterCommand(s.store, pageID, afterID, blockType).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return res.Block, s.Refresh(ctx)
}

// UpdateBlock patches a block and refreshes
func (s *State) UpdateBlock(ctx context.Context, id int64, patch domain.BlockPatch) error {
	if _, err := commands.NewUpdateBlockCommand(s.store, id, patch).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// SetBlockType applies a slash command selection and refreshes
func (s *State) SetBlockType(ctx context.Context, id int64, blockType domain.BlockType) error {
	if _, err := commands.NewSetBlockTypeCommand(s.store, id, blockType).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ToggleChecked flips a checklist block and refreshes
func (s *State) ToggleChecked(ctx context.Context, id int64) error {
	if _, err := commands.NewToggleCheckedCommand(s.store, id).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// DeleteBlock deletes a block and refreshes
func (s *State) DeleteBlock(ctx context.Context, id int64) error {
	if _, err := commands.NewDeleteBlockCommand(s.store, id).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ReorderBlocks renumbers the blocks of a page and refreshes
func (s *State) ReorderBlocks(ctx context.Context, pageID int64, ids []int64) error {
	if _, err := commands.NewReorderBlocksCommand(s.store, pageID, ids).Execute(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// CompleteOnboarding saves the profile, sets the onboarding flag and
// refreshes
func (s *State) CompleteOnboarding(ctx context.Context, profile domain.UserProfile) error {
	saved, err := commands.NewCompleteOnboardingCommand(s.store, profile).Execute(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = saved
	s.onboardingComplete = true
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Export snapshots the whole database
func (s *State) Export(ctx context.Context) (*domain.BackupEnvelope, error) {
	return commands.NewExportCommand(s.store).Execute(ctx)
}

// Import replaces the database with env, clears the selection and reloads
// everything
func (s *State) Import(ctx context.Context, env *domain.BackupEnvelope) (*commands.ImportResult, error) {
	res, err := commands.NewImportCommand(s.store, env).Execute(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.currentPageID = nil
	s.mu.Unlock()
	return res, s.Load(ctx)
}
