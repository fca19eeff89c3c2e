package domain

import "strings"

// SlashCommand is an entry of the block type menu opened by a leading "/"
type SlashCommand struct {
	Type     BlockType
	Label    string
	Shortcut string
	Keywords []string
}

// SlashCommands is the fixed menu, in display order
var SlashCommands = []SlashCommand{
	{Type: BlockTypeText, Label: "Text", Shortcut: "text", Keywords: []string{"text", "paragraph"}},
	{Type: BlockTypeH1, Label: "Heading 1", Shortcut: "h1", Keywords: []string{"h1", "heading1", "heading"}},
	{Type: BlockTypeH2, Label: "Heading 2", Shortcut: "h2", Keywords: []string{"h2", "heading2", "heading"}},
	{Type: BlockTypeH3, Label: "Heading 3", Shortcut: "h3", Keywords: []string{"h3", "heading3", "heading"}},
	{Type: BlockTypeList, Label: "List", Shortcut: "list", Keywords: []string{"list", "ul", "bullet"}},
	{Type: BlockTypeChecklist, Label: "Checklist", Shortcut: "todo", Keywords: []string{"checklist", "todo", "task"}},
	{Type: BlockTypeQuote, Label: "Quote", Shortcut: "quote", Keywords: []string{"quote", "blockquote"}},
	{Type: BlockTypeCode, Label: "Code", Shortcut: "code", Keywords: []string{"code", "snippet"}},
}

// SlashQuery reports whether content opens the slash menu and returns the
// text typed after the slash
func SlashQuery(content string) (string, bool) {
	if !strings.HasPrefix(content, "/") {
		return "", false
	}
	return content[1:], true
}

// FilterSlashCommands returns the commands whose keywords or label contain
// query, case-insensitively. An empty query returns the full menu.
func FilterSlashCommands(query string) []SlashCommand {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []SlashCommand
	for _, cmd := range SlashCommands {
		if matchesSlash(cmd, q) {
			out = append(out, cmd)
		}
	}
	return out
}

func matchesSlash(cmd SlashCommand, q string) bool {
	if strings.Contains(strings.ToLower(cmd.Label), q) {
		return true
	}
	for _, kw := range cmd.Keywords {
		if strings.Contains(kw, q) {
			return true
		}
	}
	return false
}
