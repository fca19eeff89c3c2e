package ports

import "opennoution/internal/domain"

// SaveResult mirrors the host save-dialog collaborator
type SaveResult struct {
	Success   bool
	Path      string
	Cancelled bool
	Error     error
}

// LoadResult mirrors the host open-dialog collaborator
type LoadResult struct {
	Success   bool
	Path      string
	Data      *domain.BackupEnvelope
	Cancelled bool
	Error     error
}

// BackupFiles reads and writes backup envelopes on disk
type BackupFiles interface {
	// Save writes env to path. An empty path means the user cancelled.
	Save(env *domain.BackupEnvelope, path string) SaveResult
	// Load reads an envelope from path. An empty path means the user cancelled.
	Load(path string) LoadResult
}
