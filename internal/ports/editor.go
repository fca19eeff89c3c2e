package ports

import (
	"os/exec"

	"opennoution/internal/domain"
)

// EditorOpener opens text in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd editing the file at path.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// PrepareContent writes content to a temporary file and returns its path
	PrepareContent(content string, ext string) (string, error)

	// ReadContent reads the edited file back and removes it
	ReadContent(path string) (string, error)
}

// PagePreviewer shows a rendered page outside the terminal
type PagePreviewer interface {
	// Open renders the page, opens it and returns the written file path
	Open(page *domain.Page, blocks []domain.Block) (string, error)
}
