package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName = "opennoution"

	// FileName is the optional YAML config file inside the data directory
	FileName = "config.yaml"

	DefaultDatabase      = "opennoution.db"
	DefaultLogFile       = "opennoution.log"
	DefaultPreviewDir    = "preview"
	DefaultDebounce      = 500 * time.Millisecond
	DefaultLogLevel      = "info"
	DefaultToastDuration = 3 * time.Second
)

// Config holds runtime settings for all binaries
type Config struct {
	DataDir       string
	DBPath        string
	LogPath       string
	PreviewDir    string
	Debounce      time.Duration
	LogLevel      string
	ToastDuration time.Duration
}

// fileConfig mirrors config.yaml. Durations are Go duration strings.
type fileConfig struct {
	Database string `yaml:"database"`
	Debounce string `yaml:"debounce"`
	LogLevel string `yaml:"log_level"`
	Toast    string `yaml:"toast"`
}

// Load resolves the configuration. The data directory comes from
// dataDirOverride, then OPENNOUTION_DATA_DIR, then the XDG data home.
// Values from <data dir>/config.yaml are applied next and environment
// variables win over the file.
func Load(dataDirOverride string) (*Config, error) {
	dataDir := dataDirOverride
	if dataDir == "" {
		dataDir = getEnv("OPENNOUTION_DATA_DIR", defaultDataDir())
	}
	dataDir = ExpandPath(dataDir)

	cfg := &Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, DefaultDatabase),
		LogPath:       filepath.Join(dataDir, DefaultLogFile),
		PreviewDir:    filepath.Join(dataDir, DefaultPreviewDir),
		Debounce:      DefaultDebounce,
		LogLevel:      DefaultLogLevel,
		ToastDuration: DefaultToastDuration,
	}

	if err := cfg.applyFile(filepath.Join(dataDir, FileName)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return c.apply(fc.Database, fc.Debounce, fc.LogLevel, fc.Toast, path)
}

func (c *Config) applyEnv() error {
	return c.apply(
		os.Getenv("OPENNOUTION_DB"),
		os.Getenv("OPENNOUTION_DEBOUNCE"),
		os.Getenv("OPENNOUTION_LOG_LEVEL"),
		os.Getenv("OPENNOUTION_TOAST"),
		"environment",
	)
}

// apply overrides the non-empty values. Relative database paths are
// resolved inside the data directory.
func (c *Config) apply(db, debounce, level, toast, source string) error {
	if db != "" {
		db = ExpandPath(db)
		if !filepath.IsAbs(db) {
			db = filepath.Join(c.DataDir, db)
		}
		c.DBPath = db
	}
	if debounce != "" {
		d, err := time.ParseDuration(debounce)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid debounce %q in %s", debounce, source)
		}
		c.Debounce = d
	}
	if level != "" {
		c.LogLevel = strings.ToLower(level)
	}
	if toast != "" {
		d, err := time.ParseDuration(toast)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid toast duration %q in %s", toast, source)
		}
		c.ToastDuration = d
	}
	return nil
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return filepath.Join("~", ".local", "share", appName)
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
