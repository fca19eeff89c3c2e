package domain

import (
	"regexp"
	"strings"
)

// InlineStyle identifies one inline markup construct
type InlineStyle int

const (
	InlineBold InlineStyle = iota
	InlineItalic
	InlineCode
	InlineStrike
	InlineHighlight
)

// WrapFunc renders the inner text of a recognized inline construct
type WrapFunc func(style InlineStyle, inner string) string

var (
	boldStars   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnders  = regexp.MustCompile(`__(.+?)__`)
	inlineCode  = regexp.MustCompile("`(.+?)`")
	strike      = regexp.MustCompile(`~~(.+?)~~`)
	highlighted = regexp.MustCompile(`==(.+?)==`)
)

// RenderInline converts markdown-like inline markup to display HTML.
// Patterns are applied one after another in a fixed order (bold, italic,
// code, strikethrough, highlight). Each pass is a single non-recursive
// substitution. There is no inverse transform.
func RenderInline(text string) string {
	return RenderInlineFunc(text, htmlWrap)
}

// RenderInlineFunc applies the inline passes using wrap to render each match
func RenderInlineFunc(text string, wrap WrapFunc) string {
	if text == "" {
		return ""
	}

	out := text
	out = replaceRegexp(out, boldStars, InlineBold, wrap)
	out = replaceRegexp(out, boldUnders, InlineBold, wrap)
	out = replaceSingle(out, '*', InlineItalic, wrap)
	out = replaceSingle(out, '_', InlineItalic, wrap)
	out = replaceRegexp(out, inlineCode, InlineCode, wrap)
	out = replaceRegexp(out, strike, InlineStrike, wrap)
	out = replaceRegexp(out, highlighted, InlineHighlight, wrap)
	return out
}

func htmlWrap(style InlineStyle, inner string) string {
	switch style {
	case InlineBold:
		return "<strong>" + inner + "</strong>"
	case InlineItalic:
		return "<em>" + inner + "</em>"
	case InlineCode:
		return "<code>" + inner + "</code>"
	case InlineStrike:
		return "<del>" + inner + "</del>"
	case InlineHighlight:
		return "<mark>" + inner + "</mark>"
	}
	return inner
}

func replaceRegexp(s string, re *regexp.Regexp, style InlineStyle, wrap WrapFunc) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		return wrap(style, sub[1])
	})
}

// replaceSingle wraps text between single delimiters, ignoring doubled
// delimiters. An opening delimiter must not be preceded or followed by
// another delimiter; the closing one must not be followed by one. The
// inner text is non-empty and stays on one line.
func replaceSingle(s string, d byte, style InlineStyle, wrap WrapFunc) string {
	if strings.IndexByte(s, d) < 0 {
		return s
	}

	var b strings.Builder
	last := 0
	i := 0
	for i < len(s) {
		if s[i] != d || (i > 0 && s[i-1] == d) || i+1 >= len(s) || s[i+1] == d {
			i++
			continue
		}

		end := -1
		for j := i + 2; j < len(s); j++ {
			if s[j-1] == '\n' {
				break
			}
			if s[j] == d && (j+1 >= len(s) || s[j+1] != d) {
				end = j
				break
			}
		}
		if end < 0 {
			i++
			continue
		}

		b.WriteString(s[last:i])
		b.WriteString(wrap(style, s[i+1:end]))
		last = end + 1
		i = end + 1
	}
	b.WriteString(s[last:])
	return b.String()
}
