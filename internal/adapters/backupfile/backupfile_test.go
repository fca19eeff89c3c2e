package backupfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/application"
	"opennoution/internal/domain"
)

func sampleEnvelope() *domain.BackupEnvelope {
	ts := time.Date(2024, 5, 4, 10, 30, 0, 0, time.UTC)
	checked := true
	return &domain.BackupEnvelope{
		Version:    domain.BackupVersion,
		ExportDate: ts,
		Data: domain.BackupData{
			Pages: []domain.Page{
				{ID: 1, Title: "Root", Position: 0, CreatedAt: ts, UpdatedAt: ts},
				{ID: 2, Title: "Child", ParentID: domain.Int64Ptr(1), Position: 0, CreatedAt: ts, UpdatedAt: ts},
			},
			Blocks: []domain.Block{
				{ID: 1, PageID: 1, Type: domain.BlockTypeH1, Content: "Hello", CreatedAt: ts, UpdatedAt: ts},
				{ID: 2, PageID: 2, Type: domain.BlockTypeChecklist, Content: "Task", Checked: &checked, Position: 1, CreatedAt: ts, UpdatedAt: ts},
			},
			User:     &domain.UserProfile{ID: domain.UserProfileID, Name: "Ada", CreatedAt: ts},
			Settings: []domain.Setting{{Key: domain.SettingOnboardingComplete, Value: true}},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	files := New(zerolog.Nop())
	env := sampleEnvelope()
	path := DefaultPath(t.TempDir(), env)
	assert.True(t, strings.HasSuffix(path, "opennoution-backup-1714818600000.opn"))

	saved := files.Save(env, path)
	require.NoError(t, saved.Error)
	assert.True(t, saved.Success)
	assert.Equal(t, path, saved.Path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"version\": \"1.0.0\"", "output is indented")
	assert.Contains(t, string(raw), `"parentId": 1`)

	loaded := files.Load(path)
	require.NoError(t, loaded.Error)
	require.True(t, loaded.Success)
	if diff := cmp.Diff(env, loaded.Data); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_Cancelled(t *testing.T) {
	files := New(zerolog.Nop())

	assert.True(t, files.Save(sampleEnvelope(), "").Cancelled)
	assert.True(t, files.Load("").Cancelled)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not a backup"},
		{name: "missing data", content: `{"version":"1.0.0","exportDate":"2024-05-04T10:30:00Z"}`},
		{name: "wrong shape", content: `{"version":"1.0.0","data":{"pages":"nope"}}`},
		{name: "unknown block type", content: `{"version":"1.0.0","data":{"blocks":[{"id":1,"pageId":1,"type":"table"}]}}`},
	}

	files := New(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.opn")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			res := files.Load(path)
			assert.False(t, res.Success)
			assert.Nil(t, res.Data)
			assert.ErrorIs(t, res.Error, application.ErrMalformedBackup)
		})
	}
}

func TestLoad_EmptyDataIsValid(t *testing.T) {
	env, err := Decode([]byte(`{"version":"1.0.0","exportDate":"2024-05-04T10:30:00Z","data":{}}`))
	require.NoError(t, err)
	assert.Nil(t, env.Data.Pages)
	assert.Nil(t, env.Data.User)
}

func TestLoad_MissingFile(t *testing.T) {
	res := New(zerolog.Nop()).Load(filepath.Join(t.TempDir(), "missing.opn"))
	assert.False(t, res.Success)
	assert.Error(t, res.Error)
	assert.NotErrorIs(t, res.Error, application.ErrMalformedBackup)
}
