package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"opennoution/internal/adapters/backupfile"
	"opennoution/internal/adapters/editor"
	"opennoution/internal/adapters/preview"
	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/adapters/tui"
	"opennoution/internal/application/state"
	"opennoution/internal/config"
	"opennoution/internal/domain"
	"opennoution/internal/logging"
	"opennoution/internal/ports"
)

func main() {
	_ = godotenv.Load()

	dataDir := flag.String("data-dir", "", "directory holding the database and config")
	flag.Parse()

	if err := run(*dataDir, runProgram); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// run wires the application and hands it to start. Everything it opens is
// closed before it returns.
func run(dataDir string, start func(tea.Model) error) error {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logs, err := logging.New().FromPath(cfg.LogPath).WithLevel(cfg.LogLevel).Make()
	if err != nil {
		return err
	}
	defer logs.Close()
	logger := logs.Logger

	var app *tui.App
	store, err := sqlite.Open(context.Background(), cfg.DBPath, logger)
	switch {
	case errors.Is(err, ports.ErrStoreInit):
		logger.Error().Err(err).Msg("store initialization failed")
		app = tui.NewFatalApp(err, cfg.DBPath)
	case err != nil:
		return err
	default:
		defer store.Close()
		app = tui.NewApp(tui.Deps{
			State:   state.New(store, logger),
			Config:  cfg,
			Files:   backupfile.New(logger),
			Opener:  editor.NewOpener(),
			Preview: preview.NewOpener(cfg.PreviewDir),
			DefaultBackupPath: func() string {
				return backupfile.DefaultPath(cfg.DataDir, &domain.BackupEnvelope{ExportDate: time.Now()})
			},
			Log: logger,
		})
	}

	runErr := start(app)
	app.Close()
	if runErr != nil {
		logger.Error().Err(runErr).Msg("program exited with error")
		return runErr
	}
	return nil
}
