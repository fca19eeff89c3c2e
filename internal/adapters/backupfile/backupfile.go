// Package backupfile reads and writes backup envelopes as JSON files.
package backupfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"opennoution/internal/application"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// Files implements ports.BackupFiles on the local filesystem
type Files struct {
	log zerolog.Logger
}

// Ensure Files implements ports.BackupFiles
var _ ports.BackupFiles = (*Files)(nil)

// New creates a Files adapter
func New(log zerolog.Logger) *Files {
	return &Files{log: log}
}

// DefaultPath returns the default backup location in dir for the
// envelope's export date
func DefaultPath(dir string, env *domain.BackupEnvelope) string {
	return filepath.Join(dir, domain.BackupFileName(env.ExportDate))
}

// Save writes env as indented JSON. The file is replaced atomically, so a
// failed save never leaves a truncated backup behind.
func (f *Files) Save(env *domain.BackupEnvelope, path string) ports.SaveResult {
	if path == "" {
		return ports.SaveResult{Cancelled: true}
	}
	if env == nil {
		return ports.SaveResult{Path: path, Error: fmt.Errorf("%w: nothing to save", application.ErrMalformedBackup)}
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return ports.SaveResult{Path: path, Error: fmt.Errorf("failed to encode backup: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ports.SaveResult{Path: path, Error: fmt.Errorf("failed to create backup directory: %w", err)}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		f.log.Error().Err(err).Str("path", path).Msg("backup save failed")
		return ports.SaveResult{Path: path, Error: fmt.Errorf("failed to write backup: %w", err)}
	}

	f.log.Info().Str("path", path).Int("pages", len(env.Data.Pages)).Int("blocks", len(env.Data.Blocks)).Msg("backup saved")
	return ports.SaveResult{Success: true, Path: path}
}

// envelopeShape is used to tell a missing data object from an empty one
type envelopeShape struct {
	Version string           `json:"version"`
	Data    *json.RawMessage `json:"data"`
}

// Load parses the backup at path. Anything that is not a backup envelope
// is reported as application.ErrMalformedBackup.
func (f *Files) Load(path string) ports.LoadResult {
	if path == "" {
		return ports.LoadResult{Cancelled: true}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ports.LoadResult{Path: path, Error: fmt.Errorf("failed to read backup: %w", err)}
	}

	env, err := Decode(raw)
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("rejected backup file")
		return ports.LoadResult{Path: path, Error: err}
	}

	return ports.LoadResult{Success: true, Path: path, Data: env}
}

// Decode parses raw JSON into an envelope and checks its shape
func Decode(raw []byte) (*domain.BackupEnvelope, error) {
	var shape envelopeShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrMalformedBackup, err)
	}
	if shape.Data == nil {
		return nil, fmt.Errorf("%w: missing data", application.ErrMalformedBackup)
	}

	var env domain.BackupEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrMalformedBackup, err)
	}

	for _, b := range env.Data.Blocks {
		if !b.Type.Valid() {
			return nil, fmt.Errorf("%w: block %d has unknown type %q", application.ErrMalformedBackup, b.ID, b.Type)
		}
	}
	return &env, nil
}
