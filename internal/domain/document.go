package domain

import (
	"fmt"
	"strings"
)

// RenderMarkdown writes a page and its blocks as a markdown document.
// Block content is written as stored, inline markup included.
func RenderMarkdown(page *Page, blocks []Block) string {
	var sb strings.Builder
	if page != nil {
		fmt.Fprintf(&sb, "# %s\n\n", page.Title)
	}

	for i, b := range blocks {
		if i > 0 && needsSeparator(blocks[i-1].Type, b.Type) {
			sb.WriteByte('\n')
		}
		switch b.Type {
		case BlockTypeH1:
			fmt.Fprintf(&sb, "## %s\n", b.Content)
		case BlockTypeH2:
			fmt.Fprintf(&sb, "### %s\n", b.Content)
		case BlockTypeH3:
			fmt.Fprintf(&sb, "#### %s\n", b.Content)
		case BlockTypeQuote:
			for _, line := range strings.Split(b.Content, "\n") {
				fmt.Fprintf(&sb, "> %s\n", line)
			}
		case BlockTypeCode:
			fmt.Fprintf(&sb, "```\n%s\n```\n", b.Content)
		case BlockTypeList:
			fmt.Fprintf(&sb, "- %s\n", b.Content)
		case BlockTypeChecklist:
			mark := " "
			if b.IsChecked() {
				mark = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", mark, b.Content)
		default:
			fmt.Fprintf(&sb, "%s\n", b.Content)
		}
	}
	return sb.String()
}

// consecutive list items stay together; everything else is separated
func needsSeparator(prev, cur BlockType) bool {
	isList := func(t BlockType) bool { return t == BlockTypeList || t == BlockTypeChecklist }
	return !(isList(prev) && isList(cur))
}

// RenderHTML writes a page and its blocks as an HTML fragment, applying
// the inline markup to each block. Content is not escaped.
func RenderHTML(page *Page, blocks []Block) string {
	var sb strings.Builder
	if page != nil {
		fmt.Fprintf(&sb, "<h1>%s</h1>\n", page.Title)
	}

	for _, b := range blocks {
		inner := RenderInline(b.Content)
		switch b.Type {
		case BlockTypeH1:
			fmt.Fprintf(&sb, "<h2>%s</h2>\n", inner)
		case BlockTypeH2:
			fmt.Fprintf(&sb, "<h3>%s</h3>\n", inner)
		case BlockTypeH3:
			fmt.Fprintf(&sb, "<h4>%s</h4>\n", inner)
		case BlockTypeQuote:
			fmt.Fprintf(&sb, "<blockquote>%s</blockquote>\n", inner)
		case BlockTypeCode:
			fmt.Fprintf(&sb, "<pre><code>%s</code></pre>\n", b.Content)
		case BlockTypeList:
			fmt.Fprintf(&sb, "<ul><li>%s</li></ul>\n", inner)
		case BlockTypeChecklist:
			checked := ""
			if b.IsChecked() {
				checked = " checked"
			}
			fmt.Fprintf(&sb, "<div class=\"checklist\"><input type=\"checkbox\" disabled%s> %s</div>\n", checked, inner)
		default:
			fmt.Fprintf(&sb, "<p>%s</p>\n", inner)
		}
	}
	return sb.String()
}
