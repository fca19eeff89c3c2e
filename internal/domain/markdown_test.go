package domain

import "testing"

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "bold stars", in: "**bold**", want: "<strong>bold</strong>"},
		{name: "bold underscores", in: "__bold__", want: "<strong>bold</strong>"},
		{name: "italic star", in: "*it*", want: "<em>it</em>"},
		{name: "italic underscore", in: "_it_", want: "<em>it</em>"},
		{name: "inline code", in: "run `go test`", want: "run <code>go test</code>"},
		{name: "strikethrough", in: "~~gone~~", want: "<del>gone</del>"},
		{name: "highlight", in: "==note==", want: "<mark>note</mark>"},
		{name: "mixed", in: "a **b** and *c*", want: "a <strong>b</strong> and <em>c</em>"},
		{name: "lone star untouched", in: "2 * 3 = 6", want: "2 * 3 = 6"},
		{name: "italic does not span lines", in: "*a\nb*", want: "*a\nb*"},
		{name: "multiple matches", in: "==a== ==b==", want: "<mark>a</mark> <mark>b</mark>"},
		{name: "underscores inside words", in: "snake_case_name", want: "snake<em>case</em>name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderInline(tt.in); got != tt.want {
				t.Errorf("RenderInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderInlineFunc_CustomWrap(t *testing.T) {
	wrap := func(style InlineStyle, inner string) string {
		if style == InlineBold {
			return "[B:" + inner + "]"
		}
		return inner
	}

	got := RenderInlineFunc("**x** *y*", wrap)
	if got != "[B:x] y" {
		t.Errorf("expected %q, got %q", "[B:x] y", got)
	}
}
