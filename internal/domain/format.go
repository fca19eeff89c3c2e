package domain

import "fmt"

// FormatAction is an edit applied to a selected range of block content
type FormatAction string

const (
	FormatBold      FormatAction = "bold"
	FormatItalic    FormatAction = "italic"
	FormatUnderline FormatAction = "underline"
	FormatCode      FormatAction = "code"
	FormatHighlight FormatAction = "highlight"
	FormatStrike    FormatAction = "strike"
	FormatLink      FormatAction = "link"
	FormatCut       FormatAction = "cut"
	FormatDelete    FormatAction = "delete"
)

var formatWrappers = map[FormatAction]func(string) string{
	FormatBold:      func(s string) string { return "**" + s + "**" },
	FormatItalic:    func(s string) string { return "*" + s + "*" },
	FormatUnderline: func(s string) string { return "<u>" + s + "</u>" },
	FormatCode:      func(s string) string { return "`" + s + "`" },
	FormatHighlight: func(s string) string { return "==" + s + "==" },
	FormatStrike:    func(s string) string { return "~~" + s + "~~" },
	FormatLink:      func(s string) string { return "[" + s + "](url)" },
}

// ParseFormatAction converts a string into a FormatAction
func ParseFormatAction(s string) (FormatAction, error) {
	a := FormatAction(s)
	if _, ok := formatWrappers[a]; ok || a == FormatCut || a == FormatDelete {
		return a, nil
	}
	return "", fmt.Errorf("unknown format action: %q", s)
}

// ApplyFormat applies action to content[start:end] and returns the new
// content. Offsets are byte offsets; start == end selects nothing, which
// still wraps an empty string for the markup actions.
func ApplyFormat(content string, start, end int, action FormatAction) (string, error) {
	if start < 0 || end > len(content) || start > end {
		return "", fmt.Errorf("invalid selection [%d:%d] for content of length %d", start, end, len(content))
	}

	selected := content[start:end]
	switch action {
	case FormatCut, FormatDelete:
		return content[:start] + content[end:], nil
	}

	wrapper, ok := formatWrappers[action]
	if !ok {
		return "", fmt.Errorf("unknown format action: %q", action)
	}
	return content[:start] + wrapper(selected) + content[end:], nil
}

// WordBounds returns the byte range of the word around offset, used when a
// format shortcut is pressed without a selection
func WordBounds(content string, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	isSpace := func(c byte) bool { return c == ' ' || c == '\n' || c == '\t' }

	start := offset
	for start > 0 && !isSpace(content[start-1]) {
		start--
	}
	end := offset
	for end < len(content) && !isSpace(content[end]) {
		end++
	}
	return start, end
}
