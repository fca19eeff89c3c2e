package domain

import "testing"

func TestRenderMarkdown(t *testing.T) {
	checked := true
	page := &Page{ID: 1, Title: "Groceries"}
	blocks := []Block{
		{Type: BlockTypeH1, Content: "This week"},
		{Type: BlockTypeChecklist, Content: "milk", Checked: &checked},
		{Type: BlockTypeChecklist, Content: "bread"},
		{Type: BlockTypeQuote, Content: "eat\nwell"},
		{Type: BlockTypeCode, Content: "x := 1"},
		{Type: BlockTypeText, Content: "**done**"},
	}

	want := "# Groceries\n\n" +
		"## This week\n" +
		"\n- [x] milk\n" +
		"- [ ] bread\n" +
		"\n> eat\n> well\n" +
		"\n```\nx := 1\n```\n" +
		"\n**done**\n"

	if got := RenderMarkdown(page, blocks); got != want {
		t.Errorf("RenderMarkdown() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderHTML(t *testing.T) {
	blocks := []Block{
		{Type: BlockTypeText, Content: "hello **world**"},
		{Type: BlockTypeCode, Content: "a **b**"},
		{Type: BlockTypeList, Content: "==hi=="},
	}

	want := "<p>hello <strong>world</strong></p>\n" +
		"<pre><code>a **b**</code></pre>\n" +
		"<ul><li><mark>hi</mark></li></ul>\n"

	if got := RenderHTML(nil, blocks); got != want {
		t.Errorf("RenderHTML() =\n%q\nwant\n%q", got, want)
	}
}
