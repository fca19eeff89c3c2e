// Package preview writes a page as a standalone HTML file and opens it in
// the system's default viewer.
package preview

import (
	"fmt"
	"html"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/natefinch/atomic"

	"opennoution/internal/domain"
)

// Opener renders pages into dir and hands them to the desktop
type Opener struct {
	dir  string
	open func(uri string) error
}

// NewOpener creates an opener that keeps preview files in dir
func NewOpener(dir string) *Opener {
	return &Opener{
		dir:  dir,
		open: openURI,
	}
}

// Open renders page and opens it. It returns the written file path.
func (o *Opener) Open(page *domain.Page, blocks []domain.Block) (string, error) {
	path, err := o.Write(page, blocks)
	if err != nil {
		return "", err
	}
	if err := o.open(FileURI(path)); err != nil {
		return path, fmt.Errorf("failed to open preview: %w", err)
	}
	return path, nil
}

// Write renders page to <dir>/page-<id>.html, replacing any earlier preview
func (o *Opener) Write(page *domain.Page, blocks []domain.Block) (string, error) {
	if page == nil {
		return "", fmt.Errorf("no page to preview")
	}
	if err := os.MkdirAll(o.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create preview directory: %w", err)
	}

	path := filepath.Join(o.dir, fmt.Sprintf("page-%d.html", page.ID))
	if err := atomic.WriteFile(path, strings.NewReader(Document(page, blocks))); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	return path, nil
}

// Document wraps the rendered page in a minimal HTML document
func Document(page *domain.Page, blocks []domain.Block) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(page.Title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(domain.RenderHTML(page, blocks))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// FileURI returns the file:// URI for an absolute path
func FileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
