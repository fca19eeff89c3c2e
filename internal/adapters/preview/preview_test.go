package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opennoution/internal/domain"
)

func TestFileURI(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "simple path",
			path: "/home/ada/.local/share/opennoution/preview/page-1.html",
			want: "file:///home/ada/.local/share/opennoution/preview/page-1.html",
		},
		{
			name: "path with spaces",
			path: "/home/ada/My Notes/page-2.html",
			want: "file:///home/ada/My%20Notes/page-2.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileURI(tt.path); got != tt.want {
				t.Errorf("FileURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_WritesAndOpens(t *testing.T) {
	dir := t.TempDir()
	var opened string
	o := NewOpener(dir)
	o.open = func(uri string) error {
		opened = uri
		return nil
	}

	page := &domain.Page{ID: 4, Title: "Q&A"}
	blocks := []domain.Block{{ID: 1, PageID: 4, Type: domain.BlockTypeText, Content: "**yes**"}}

	path, err := o.Open(page, blocks)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if want := filepath.Join(dir, "page-4.html"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if opened != FileURI(path) {
		t.Errorf("opened %q, want %q", opened, FileURI(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	for _, want := range []string{"<title>Q&amp;A</title>", "<strong>yes</strong>", "</html>"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestWrite_NilPage(t *testing.T) {
	if _, err := NewOpener(t.TempDir()).Write(nil, nil); err == nil {
		t.Error("expected an error for a nil page")
	}
}
