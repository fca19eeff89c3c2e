package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"opennoution/internal/adapters/tui/styles"
	"opennoution/internal/application/state"
	"opennoution/internal/ports"
)

type backupMode int

const (
	backupExport backupMode = iota
	backupImport
)

// BackupModel asks for a file path and exports or imports a backup
type BackupModel struct {
	ViewState
	state       *state.State
	files       ports.BackupFiles
	defaultPath func() string
	form        *InputForm
	mode        backupMode
}

// NewBackupModel creates a new backup dialog. defaultPath suggests the
// export file name.
func NewBackupModel(st *state.State, files ports.BackupFiles, defaultPath func() string) *BackupModel {
	return &BackupModel{
		state:       st,
		files:       files,
		defaultPath: defaultPath,
		form:        NewInputForm(RequiredField("File:", "path/to/backup.opn", 0)),
	}
}

// SetExport prepares the dialog for writing a backup
func (m *BackupModel) SetExport() {
	m.mode = backupExport
	m.form.Reset()
	if m.defaultPath != nil {
		m.form.SetValue(0, m.defaultPath())
	}
	m.ClearMessage()
}

// SetImport prepares the dialog for restoring a backup
func (m *BackupModel) SetImport() {
	m.mode = backupImport
	m.form.Reset()
	m.ClearMessage()
}

// Init initializes the dialog
func (m *BackupModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the dialog
func (m *BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case dialogErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return SwitchToWorkspaceMsg{} }
		case tea.KeyEnter:
			if err := m.form.Check(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			path := m.form.Value(0)
			if m.mode == backupImport {
				return m, m.doImport(path)
			}
			return m, m.doExport(path)
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *BackupModel) doExport(path string) tea.Cmd {
	return func() tea.Msg {
		env, err := m.state.Export(context.Background())
		if err != nil {
			return dialogErrMsg{err}
		}
		res := m.files.Save(env, path)
		switch {
		case res.Cancelled:
			return SwitchToWorkspaceMsg{}
		case !res.Success:
			return dialogErrMsg{res.Error}
		}
		return ActionDoneMsg{Message: fmt.Sprintf("Exported %d page(s) to %s", len(env.Data.Pages), res.Path)}
	}
}

func (m *BackupModel) doImport(path string) tea.Cmd {
	return func() tea.Msg {
		res := m.files.Load(path)
		switch {
		case res.Cancelled:
			return SwitchToWorkspaceMsg{}
		case !res.Success:
			return dialogErrMsg{res.Error}
		}
		result, err := m.state.Import(context.Background(), res.Data)
		if err != nil {
			return dialogErrMsg{err}
		}
		return ActionDoneMsg{Message: result.Message}
	}
}

// View renders the dialog
func (m *BackupModel) View() string {
	var b strings.Builder

	if m.mode == backupImport {
		b.WriteString(styles.Title.Render("Import Backup"))
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorMsg.Render("Importing replaces every page, block and setting."))
	} else {
		b.WriteString(styles.Title.Render("Export Backup"))
		b.WriteString("\n\n")
		b.WriteString(RenderMuted("Writes all pages, blocks, the profile and settings as JSON."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.form.RenderFields())
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	submit := "export"
	if m.mode == backupImport {
		submit = "import"
	}
	b.WriteString(m.form.RenderHelp(submit))

	return styles.App.Render(b.String())
}
