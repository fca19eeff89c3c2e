package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderTitle renders a title with the standard title style
func RenderTitle(title string) string {
	return styles.Title.Render(title)
}

// RenderSubtitle renders a subtitle with the standard subtitle style
func RenderSubtitle(subtitle string) string {
	return styles.Subtitle.Render(subtitle)
}

// RenderMuted renders muted/secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(RenderTitle(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(RenderSubtitle(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(RenderMuted(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

// StringUnwrapped returns the built view string without app style wrapping
func (v *ViewBuilder) StringUnwrapped() string {
	return v.b.String()
}

// RenderTerminal applies the inline markup passes with terminal styles
// instead of HTML tags
func RenderTerminal(text string) string {
	return domain.RenderInlineFunc(text, terminalWrap)
}

func terminalWrap(style domain.InlineStyle, inner string) string {
	switch style {
	case domain.InlineBold:
		return styles.InlineBold.Render(inner)
	case domain.InlineItalic:
		return styles.InlineItalic.Render(inner)
	case domain.InlineCode:
		return styles.InlineCode.Render(inner)
	case domain.InlineStrike:
		return styles.InlineStrike.Render(inner)
	case domain.InlineHighlight:
		return styles.InlineHighlight.Render(inner)
	}
	return inner
}

// blockPlaceholders are shown for empty blocks, per type
var blockPlaceholders = map[domain.BlockType]string{
	domain.BlockTypeText:      "Type '/' for commands",
	domain.BlockTypeH1:        "Heading 1",
	domain.BlockTypeH2:        "Heading 2",
	domain.BlockTypeH3:        "Heading 3",
	domain.BlockTypeQuote:     "Quote",
	domain.BlockTypeCode:      "Code",
	domain.BlockTypeList:      "List item",
	domain.BlockTypeChecklist: "To-do",
}

// RenderBlock renders a block for display. Code blocks are shown verbatim;
// every other type goes through the inline markup.
func RenderBlock(b domain.Block, width int) string {
	content := b.Content
	if content == "" {
		return blockPrefix(b) + styles.BlockPlaceholder.Render(blockPlaceholders[b.Type])
	}

	if b.Type == domain.BlockTypeCode {
		style := styles.BlockCode
		if width > 4 {
			style = style.Width(width - 2)
		}
		return style.Render(content)
	}

	rendered := RenderTerminal(content)
	switch b.Type {
	case domain.BlockTypeH1:
		rendered = styles.BlockH1.Render(rendered)
	case domain.BlockTypeH2:
		rendered = styles.BlockH2.Render(rendered)
	case domain.BlockTypeH3:
		rendered = styles.BlockH3.Render(rendered)
	case domain.BlockTypeQuote:
		rendered = styles.BlockQuote.Render(rendered)
	case domain.BlockTypeChecklist:
		if b.IsChecked() {
			rendered = styles.BlockChecked.Render(rendered)
		}
	}
	return blockPrefix(b) + rendered
}

func blockPrefix(b domain.Block) string {
	switch b.Type {
	case domain.BlockTypeList:
		return "• "
	case domain.BlockTypeChecklist:
		if b.IsChecked() {
			return "[x] "
		}
		return "[ ] "
	}
	return ""
}
