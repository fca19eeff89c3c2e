package domain

import "testing"

func TestApplyFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		start   int
		end     int
		action  FormatAction
		want    string
		wantErr bool
	}{
		{name: "bold selection", content: "hello world", start: 6, end: 11, action: FormatBold, want: "hello **world**"},
		{name: "italic selection", content: "hello world", start: 0, end: 5, action: FormatItalic, want: "*hello* world"},
		{name: "underline", content: "abc", start: 0, end: 3, action: FormatUnderline, want: "<u>abc</u>"},
		{name: "code", content: "use fmt now", start: 4, end: 7, action: FormatCode, want: "use `fmt` now"},
		{name: "highlight", content: "abc", start: 1, end: 2, action: FormatHighlight, want: "a==b==c"},
		{name: "strike", content: "abc", start: 0, end: 3, action: FormatStrike, want: "~~abc~~"},
		{name: "link", content: "see docs", start: 4, end: 8, action: FormatLink, want: "see [docs](url)"},
		{name: "cut removes selection", content: "hello world", start: 5, end: 11, action: FormatCut, want: "hello"},
		{name: "delete removes selection", content: "hello world", start: 0, end: 6, action: FormatDelete, want: "world"},
		{name: "selection out of range", content: "abc", start: 2, end: 10, action: FormatBold, wantErr: true},
		{name: "inverted selection", content: "abc", start: 2, end: 1, action: FormatBold, wantErr: true},
		{name: "unknown action", content: "abc", start: 0, end: 1, action: FormatAction("blink"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyFormat(tt.content, tt.start, tt.end, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ApplyFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		content   string
		offset    int
		wantStart int
		wantEnd   int
	}{
		{"hello world", 8, 6, 11},
		{"hello world", 0, 0, 5},
		{"hello world", 5, 0, 5},
		{"hello world", 99, 6, 11},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		start, end := WordBounds(tt.content, tt.offset)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("WordBounds(%q, %d) = (%d, %d), want (%d, %d)",
				tt.content, tt.offset, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestParseFormatAction(t *testing.T) {
	for _, s := range []string{"bold", "italic", "underline", "code", "highlight", "strike", "link", "cut", "delete"} {
		if _, err := ParseFormatAction(s); err != nil {
			t.Errorf("ParseFormatAction(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseFormatAction("shout"); err == nil {
		t.Error("expected error for unknown action")
	}
}
