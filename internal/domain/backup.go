package domain

import (
	"fmt"
	"time"
)

const (
	// BackupVersion is written into every exported envelope
	BackupVersion = "1.0.0"

	// BackupExtension is the file extension of backup files
	BackupExtension = ".opn"
)

// BackupEnvelope is the full-database snapshot format
type BackupEnvelope struct {
	Version    string     `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Data       BackupData `json:"data"`
}

// BackupData carries the four collections. Nil slices or a nil user mean
// "nothing to import" for that collection.
type BackupData struct {
	Pages    []Page       `json:"pages"`
	Blocks   []Block      `json:"blocks"`
	User     *UserProfile `json:"user"`
	Settings []Setting    `json:"settings"`
}

// BackupFileName returns the default file name for a backup taken at t
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("opennoution-backup-%d%s", t.UnixMilli(), BackupExtension)
}
