package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Surface   = lipgloss.Color("#1F2937")
	Accent    = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panes
	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(Muted).
		Padding(0, 1)

	SidebarFocused = Sidebar.
			BorderForeground(Primary)

	Editor = lipgloss.NewStyle().
		Padding(0, 2)

	PageTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Underline(true)

	// Tree node styles
	NodePage = lipgloss.NewStyle()

	NodeCurrent = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Block styles
	BlockH1 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	BlockH2 = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	BlockH3 = lipgloss.NewStyle().
		Bold(true)

	BlockQuote = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Muted).
			Foreground(Muted).
			Italic(true).
			PaddingLeft(1)

	BlockCode = lipgloss.NewStyle().
			Background(Surface).
			Foreground(Secondary).
			Padding(0, 1)

	BlockChecked = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	BlockPlaceholder = lipgloss.NewStyle().
				Foreground(Muted).
				Italic(true)

	BlockCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Inline markup
	InlineBold      = lipgloss.NewStyle().Bold(true)
	InlineItalic    = lipgloss.NewStyle().Italic(true)
	InlineCode      = lipgloss.NewStyle().Background(Surface).Foreground(Warning)
	InlineStrike    = lipgloss.NewStyle().Strikethrough(true)
	InlineHighlight = lipgloss.NewStyle().Background(Warning).Foreground(Black)

	// Slash menu
	Menu = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	MenuSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Toasts
	Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Foreground(Secondary).
		Padding(0, 1)

	ToastError = Toast.
			BorderForeground(Error).
			Foreground(Error)

	// Fatal screen
	Fatal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Error).
		Padding(1, 3)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
