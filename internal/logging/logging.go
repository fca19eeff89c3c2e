// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const permission = 0664

// Build collects logger options before Make
type Build struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// Log is a built logger and the file it writes to, if any
type Log struct {
	Logger  zerolog.Logger
	LogFile *os.File
}

// New starts a logger build writing to stderr at info level
func New() *Build {
	return &Build{
		writer: os.Stderr,
		level:  zerolog.InfoLevel,
	}
}

// FromPath appends to the file at path instead of the writer
func (b *Build) FromPath(path string) *Build {
	b.path = path
	return b
}

// FromWriter writes to w
func (b *Build) FromWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// WithLevel sets the minimum level from its name. Unknown names keep info.
func (b *Build) WithLevel(name string) *Build {
	if lvl, err := zerolog.ParseLevel(name); err == nil && name != "" {
		b.level = lvl
	}
	return b
}

// Make opens the log file when a path was given and returns the logger
func (b *Build) Make() (*Log, error) {
	log := &Log{}
	writer := b.writer
	if b.path != "" {
		if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		log.LogFile = f
		writer = zerolog.SyncWriter(f)
	}
	log.Logger = zerolog.New(writer).Level(b.level).With().Timestamp().Logger()
	return log, nil
}

// Close closes the log file, if one was opened
func (l *Log) Close() error {
	if l.LogFile == nil {
		return nil
	}
	return l.LogFile.Close()
}
