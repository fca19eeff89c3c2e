package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opennoution/internal/adapters/tui"
	"opennoution/internal/config"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENNOUTION_DB", "")
	t.Setenv("OPENNOUTION_DEBOUNCE", "")
	t.Setenv("OPENNOUTION_LOG_LEVEL", "info")
	t.Setenv("OPENNOUTION_TOAST", "")
}

func TestRun_ProgramErrorClosesResources(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()

	var got tea.Model
	err := run(dir, func(m tea.Model) error {
		got = m
		return errors.New("terminal went away")
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "terminal went away")
	assert.IsType(t, &tui.App{}, got)

	// Closing the last connection checkpoints and removes the WAL file
	assert.FileExists(t, filepath.Join(dir, config.DefaultDatabase))
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultDatabase+"-wal"))

	logs, err := os.ReadFile(filepath.Join(dir, config.DefaultLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "program exited with error")
}

func TestRun_CleanExit(t *testing.T) {
	setTestEnv(t)
	dir := t.TempDir()

	called := false
	err := run(dir, func(tea.Model) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultDatabase+"-wal"))
}

func TestRun_ConfigErrorSkipsProgram(t *testing.T) {
	setTestEnv(t)
	t.Setenv("OPENNOUTION_DEBOUNCE", "soon")

	err := run(t.TempDir(), func(tea.Model) error {
		t.Fatal("program must not start")
		return nil
	})
	assert.ErrorContains(t, err, "invalid debounce")
}
