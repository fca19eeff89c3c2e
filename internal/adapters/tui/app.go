package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"opennoution/internal/adapters/editor"
	"opennoution/internal/adapters/tui/views"
	"opennoution/internal/application/debounce"
	"opennoution/internal/application/state"
	"opennoution/internal/config"
	"opennoution/internal/domain"
	"opennoution/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewOnboarding
	ViewWorkspace
	ViewPageForm
	ViewDelete
	ViewBackup
	ViewHelp
	ViewFatal
)

const (
	maxSidebarWidth = 32
	eventBuffer     = 32
)

// Deps are the collaborators of the TUI
type Deps struct {
	State  *state.State
	Config *config.Config
	Files  ports.BackupFiles
	// Opener may be nil, which disables external editing
	Opener ports.EditorOpener
	// Preview may be nil, which disables the browser preview
	Preview ports.PagePreviewer
	// DefaultBackupPath suggests the export file name
	DefaultBackupPath func() string
	Log               zerolog.Logger
}

// App is the main TUI application model
type App struct {
	deps   Deps
	log    zerolog.Logger
	saver  *debounce.Debouncer[views.BlockEdit]
	events chan tea.Msg

	view           ViewState
	sidebarFocused bool

	sidebar    *views.SidebarModel
	editor     *views.EditorModel
	pageForm   *views.PageFormModel
	deleteView *views.DeleteModel
	backup     *views.BackupModel
	onboarding *views.OnboardingModel
	help       *views.HelpModel
	toast      *views.ToastModel
	fatal      *views.FatalModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(deps Deps) *App {
	a := &App{
		deps:           deps,
		log:            deps.Log,
		events:         make(chan tea.Msg, eventBuffer),
		view:           ViewLoading,
		sidebarFocused: true,
	}

	a.saver = debounce.New(deps.Config.Debounce, a.saveBlock)

	st := deps.State
	a.sidebar = views.NewSidebarModel(st)
	a.editor = views.NewEditorModel(st, a.saver)
	a.pageForm = views.NewPageFormModel(st)
	a.deleteView = views.NewDeleteModel(st)
	a.backup = views.NewBackupModel(st, deps.Files, deps.DefaultBackupPath)
	a.onboarding = views.NewOnboardingModel(st)
	a.help = views.NewHelpModel()
	a.toast = views.NewToastModel(deps.Config.ToastDuration)
	return a
}

// NewFatalApp creates an application that only shows a startup failure
func NewFatalApp(err error, dbPath string) *App {
	return &App{
		view:  ViewFatal,
		fatal: views.NewFatalModel(err, dbPath),
	}
}

// Close writes any edit still waiting for the debounce delay
func (a *App) Close() {
	if a.saver != nil {
		a.saver.Flush()
	}
}

// saveBlock runs on the debounce timer goroutine, or inside Update on a
// flush. State serializes the write; the result is posted back as a message.
func (a *App) saveBlock(edit views.BlockEdit) {
	content := edit.Content
	err := a.deps.State.UpdateBlock(context.Background(), edit.BlockID, domain.BlockPatch{Content: &content})

	var msg tea.Msg = blockSavedMsg{blockID: edit.BlockID}
	if err != nil {
		a.log.Error().Err(err).Int64("block", edit.BlockID).Msg("failed to save block")
		msg = views.ToastMsg{Text: fmt.Sprintf("Save failed: %v", err), IsErr: true}
	}

	select {
	case a.events <- msg:
	default:
		a.log.Warn().Int64("block", edit.BlockID).Msg("event queue full, dropping save notification")
	}
}

// blockSavedMsg reports a completed debounced save
type blockSavedMsg struct {
	blockID int64
}

// eventMsg wraps a message that arrived through the event channel
type eventMsg struct {
	msg tea.Msg
}

func (a *App) waitForEvent() tea.Msg {
	return eventMsg{<-a.events}
}

type stateLoadedMsg struct {
	err error
}

type externalEditDoneMsg struct {
	blockID int64
	path    string
	err     error
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.view == ViewFatal {
		return nil
	}
	return tea.Batch(a.loadState, a.waitForEvent)
}

func (a *App) loadState() tea.Msg {
	return stateLoadedMsg{err: a.deps.State.Load(context.Background())}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.view == ViewFatal {
		_, cmd := a.fatal.Update(msg)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case eventMsg:
		_, cmd := a.Update(msg.msg)
		return a, tea.Batch(cmd, a.waitForEvent)

	case stateLoadedMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Msg("failed to load state")
			a.view = ViewFatal
			a.fatal = views.NewFatalModel(msg.err, a.deps.Config.DBPath)
			return a, nil
		}
		a.sidebar.Reload()
		a.editor.Reload()
		if !a.deps.State.OnboardingComplete() {
			a.view = ViewOnboarding
			return a, a.onboarding.Init()
		}
		a.view = ViewWorkspace
		return a, nil

	case views.OnboardingDoneMsg:
		a.view = ViewWorkspace
		return a, a.showToast(views.ToastMsg{Text: fmt.Sprintf("Welcome, %s!", msg.Name)})

	case views.ToastMsg:
		return a, a.showToast(msg)

	case blockSavedMsg:
		a.log.Debug().Int64("block", msg.blockID).Msg("block saved")
		a.editor.Reload()
		return a, nil

	case views.StateChangedMsg, views.PageSelectedMsg:
		_, sideCmd := a.sidebar.Update(msg)
		_, edCmd := a.editor.Update(msg)
		if _, ok := msg.(views.PageSelectedMsg); ok {
			a.focusEditor()
		}
		return a, tea.Batch(sideCmd, edCmd)

	case views.FocusEditorMsg:
		a.focusEditor()
		return a, nil

	case views.FocusSidebarMsg:
		a.focusSidebar()
		return a, nil

	// View switching messages
	case views.SwitchToWorkspaceMsg:
		a.view = ViewWorkspace
		return a, nil

	case views.SwitchToHelpMsg:
		a.view = ViewHelp
		return a, nil

	case views.SwitchToCreatePageMsg:
		a.view = ViewPageForm
		a.pageForm.SetCreate(msg.ParentID)
		return a, a.pageForm.Init()

	case views.SwitchToRenamePageMsg:
		a.view = ViewPageForm
		a.pageForm.SetRename(msg.Page)
		return a, a.pageForm.Init()

	case views.SwitchToDeletePageMsg:
		a.view = ViewDelete
		a.deleteView.SetPage(msg.Page)
		return a, nil

	case views.SwitchToExportMsg:
		a.view = ViewBackup
		a.backup.SetExport()
		return a, a.backup.Init()

	case views.SwitchToImportMsg:
		a.editor.Blur()
		a.view = ViewBackup
		a.backup.SetImport()
		return a, a.backup.Init()

	case views.ActionDoneMsg:
		a.view = ViewWorkspace
		a.sidebar.Reload()
		a.editor.Reload()
		if msg.PageID != 0 {
			a.sidebar.RevealPage(msg.PageID)
		}
		return a, a.showToast(views.ToastMsg{Text: msg.Message})

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Block)

	case externalEditDoneMsg:
		return a, a.finishExternalEdit(msg)

	case views.PreviewPageMsg:
		return a, a.previewPage()
	}

	if a.toast.Update(msg) {
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.view {
	case ViewOnboarding:
		_, cmd = a.onboarding.Update(msg)
	case ViewPageForm:
		_, cmd = a.pageForm.Update(msg)
	case ViewDelete:
		_, cmd = a.deleteView.Update(msg)
	case ViewBackup:
		_, cmd = a.backup.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewWorkspace:
		if a.sidebarFocused {
			_, cmd = a.sidebar.Update(msg)
		} else {
			_, cmd = a.editor.Update(msg)
		}
	}

	return a, cmd
}

func (a *App) showToast(msg views.ToastMsg) tea.Cmd {
	if msg.IsErr {
		a.log.Warn().Str("toast", msg.Text).Msg("error shown")
	}
	return a.toast.Show(msg)
}

func (a *App) focusEditor() {
	if a.deps.State.CurrentPage() == nil {
		return
	}
	a.sidebarFocused = false
	a.sidebar.Blur()
	a.editor.Focus()
}

func (a *App) focusSidebar() {
	a.sidebarFocused = true
	a.editor.Blur()
	a.sidebar.Focus()
}

func (a *App) layout() {
	sideWidth := min(maxSidebarWidth, a.width/3)
	bodyHeight := max(a.height-1, 0)

	a.sidebar.SetSize(sideWidth, bodyHeight)
	a.editor.SetSize(a.width-sideWidth, bodyHeight)
	a.pageForm.SetSize(a.width, a.height)
	a.deleteView.SetSize(a.width, a.height)
	a.backup.SetSize(a.width, a.height)
	a.onboarding.SetSize(a.width, a.height)
	a.help.SetSize(a.width, a.height)
}

func (a *App) openEditor(block domain.Block) tea.Cmd {
	if a.deps.Opener == nil {
		return a.showToast(views.ToastMsg{Text: "No external editor configured", IsErr: true})
	}
	a.saver.Flush()

	path, err := a.deps.Opener.PrepareContent(block.Content, editor.Extension(block.Type))
	if err != nil {
		return a.showToast(views.ToastMsg{Text: err.Error(), IsErr: true})
	}

	cmd, err := a.deps.Opener.Command(path)
	if err != nil {
		return func() tea.Msg {
			return externalEditDoneMsg{blockID: block.ID, path: path, err: err}
		}
	}

	blockID := block.ID
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditDoneMsg{blockID: blockID, path: path, err: err}
	})
}

func (a *App) finishExternalEdit(msg externalEditDoneMsg) tea.Cmd {
	content, readErr := a.deps.Opener.ReadContent(msg.path)
	if msg.err != nil {
		return a.showToast(views.ToastMsg{Text: fmt.Sprintf("Editor failed: %v", msg.err), IsErr: true})
	}
	if readErr != nil {
		return a.showToast(views.ToastMsg{Text: readErr.Error(), IsErr: true})
	}

	st := a.deps.State
	return func() tea.Msg {
		err := st.UpdateBlock(context.Background(), msg.blockID, domain.BlockPatch{Content: &content})
		if err != nil {
			return views.ToastMsg{Text: err.Error(), IsErr: true}
		}
		return views.StateChangedMsg{SelectBlockID: msg.blockID}
	}
}

func (a *App) previewPage() tea.Cmd {
	if a.deps.Preview == nil {
		return a.showToast(views.ToastMsg{Text: "Preview is not available", IsErr: true})
	}
	page := a.deps.State.CurrentPage()
	if page == nil {
		return nil
	}
	a.saver.Flush()
	blocks := a.deps.State.Blocks()

	preview := a.deps.Preview
	log := a.log
	return func() tea.Msg {
		path, err := preview.Open(page, blocks)
		if err != nil {
			log.Warn().Err(err).Int64("page_id", page.ID).Msg("preview failed")
			return views.ToastMsg{Text: err.Error(), IsErr: true}
		}
		return views.ToastMsg{Text: "Preview written to " + path}
	}
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.view {
	case ViewFatal:
		return a.fatal.View()
	case ViewLoading:
		return "Loading..."
	case ViewOnboarding:
		body = a.onboarding.View()
	case ViewPageForm:
		body = a.pageForm.View()
	case ViewDelete:
		body = a.deleteView.View()
	case ViewBackup:
		body = a.backup.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), a.editor.View())
	}

	if a.toast.Visible() {
		return lipgloss.JoinVertical(lipgloss.Left, body, a.toast.View())
	}
	return body
}
