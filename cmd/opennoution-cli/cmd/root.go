package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"opennoution/internal/adapters/sqlite"
	"opennoution/internal/config"
	"opennoution/internal/logging"
	"opennoution/internal/ports"
)

var (
	dataDir string
	cfg     *config.Config
	store   *sqlite.Store
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "opennoution-cli",
	Short: "CLI for an opennoution notebook",
	Long: `opennoution-cli is a command-line interface to the local page and block
store shared with the opennoution terminal editor.

It provides commands to create, rename, move and delete pages, edit their
blocks, render pages as Markdown or HTML, and export or import backups.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return err
		}

		log, err := logging.New().WithLevel(cfg.LogLevel).Make()
		if err != nil {
			return err
		}
		logger = log.Logger

		store, err = sqlite.Open(cmd.Context(), cfg.DBPath, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		err := store.Close()
		store = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory holding the database and config (default $OPENNOUTION_DATA_DIR or ~/.local/share/opennoution)")
}

// GetStore returns the opened store
func GetStore() ports.Store {
	return store
}

// parseID parses a positive numeric ID argument
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", what, arg)
	}
	return id, nil
}
