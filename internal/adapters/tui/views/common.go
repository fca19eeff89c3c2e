package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToWorkspaceMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToCreatePageMsg struct {
	ParentID *int64
}

type SwitchToRenamePageMsg struct {
	Page domain.Page
}

type SwitchToDeletePageMsg struct {
	Page domain.Page
}

type SwitchToExportMsg struct{}

type SwitchToImportMsg struct{}

// StateChangedMsg tells views to re-read the shared state after a mutation
type StateChangedMsg struct {
	// SelectBlockID asks the editor to focus this block, when non-zero
	SelectBlockID int64
	// Edit asks the editor to enter edit mode on the selected block
	Edit bool
}

// PageSelectedMsg is sent after the current page changed
type PageSelectedMsg struct {
	PageID int64
}

// ToastMsg shows a transient notification
type ToastMsg struct {
	Text  string
	IsErr bool
}

// FocusEditorMsg moves keyboard focus from the sidebar to the editor
type FocusEditorMsg struct{}

// FocusSidebarMsg moves keyboard focus from the editor to the sidebar
type FocusSidebarMsg struct{}

// OpenEditorMsg asks the app to edit a block in the external editor
type OpenEditorMsg struct {
	Block domain.Block
}

// PreviewPageMsg asks the app to open the current page in a browser
type PreviewPageMsg struct{}

// BlockEdit is a pending content change for one block
type BlockEdit struct {
	BlockID int64
	Content string
}

// errToast converts an error into a failure toast
func errToast(err error) tea.Msg {
	return ToastMsg{Text: err.Error(), IsErr: true}
}

// run executes fn as a tea.Cmd, reporting failures as toasts and success
// as msg
func run(fn func(ctx context.Context) error, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return errToast(err)
		}
		return msg
	}
}

// ActionDoneMsg closes a dialog after its action succeeded
type ActionDoneMsg struct {
	Message string
	// PageID selects this page when non-zero
	PageID int64
}

// dialogErrMsg keeps a dialog open and shows the failure inside it
type dialogErrMsg struct {
	err error
}
