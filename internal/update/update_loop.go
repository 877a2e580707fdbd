package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskkeeper/internal/controller"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.ws), waitForToastCmd(m.toasts), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.dialogOpen() {
			return m.handleDialogKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.SearchFocused {
			return m.handleSearchKey(typed), nil
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if !m.Loading && !m.submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case LoadedMsg:
		m.Loading = false
		m.clampCursors()
		if typed.Err != nil {
			m.Status = StatusBar{Text: "could not load everything, press r to retry", IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "synced"}
		return m, nil
	case SubmittedMsg:
		switch {
		case typed.Err == nil:
			m.resetDialogInputs()
			m.Tab = tabFor(typed.Kind)
			m.Cursor[m.Tab] = 0
			m.Status = StatusBar{Text: fmt.Sprintf("%s created", typed.Kind)}
		case errors.Is(typed.Err, controller.ErrSubmitInFlight):
		case isValidation(typed.Err):
			m.Status = StatusBar{Text: validationText(typed.Err), IsError: true}
		default:
			m.Status = StatusBar{Text: fmt.Sprintf("could not create %s", typed.Kind), IsError: true}
		}
		return m, nil
	case MutationMsg:
		m.clampCursors()
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("%s failed", typed.Action), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s %s done", typed.Kind, typed.Action)}
		return m, nil
	case ToastMsg:
		m.applyToast(typed.Event)
		return m, waitForToastCmd(m.toasts)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Tasks:
		m.Tab = TabTasks
	case m.Keys.Notes:
		m.Tab = TabNotes
	case "tab":
		if m.Tab == TabTasks {
			m.Tab = TabNotes
		} else {
			m.Tab = TabTasks
		}
	case m.Keys.Search:
		m.SearchFocused = true
		m.searchInput.Focus()
	case m.Keys.Category:
		m.Category = model.NextCategory(m.Category, true)
		m.Cursor[m.Tab] = 0
	case m.Keys.Previous:
		m.Category = previousCategory(m.Category)
		m.Cursor[m.Tab] = 0
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case m.Keys.Add:
		return m.openDialog(m.Tab.Kind(), ""), nil
	case m.Keys.Toggle:
		if m.Tab != TabTasks {
			return m, nil
		}
		if task, ok := m.selectedTask(); ok {
			return m, toggleCmd(m.ctx, m.ws, task.ID)
		}
	case "p":
		if task, ok := m.selectedTask(); ok && m.Tab == TabTasks {
			return m, cyclePriorityCmd(m.ctx, m.ws, task)
		}
	case "o":
		if note, ok := m.selectedNote(); ok && m.Tab == TabNotes {
			return m, cycleColorCmd(m.ctx, m.ws, note)
		}
	case m.Keys.Delete:
		if m.Tab == TabNotes {
			if note, ok := m.selectedNote(); ok {
				return m, deleteCmd(m.ctx, m.ws, model.KindNote, note.ID)
			}
			return m, nil
		}
		if task, ok := m.selectedTask(); ok {
			return m, deleteCmd(m.ctx, m.ws, model.KindTask, task.ID)
		}
	case m.Keys.Refresh:
		return m.refresh()
	case m.Keys.Palette:
		m.Palette.Active = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
	case "esc":
		m.HelpVisible = false
	}
	return m, nil
}

func (m Model) refresh() (Model, tea.Cmd) {
	if m.Loading {
		return m, nil
	}
	m.Loading = true
	m.Status = StatusBar{Text: "refreshing"}
	return m, tea.Batch(loadCmd(m.ctx, m.ws), m.spinner.Tick)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc":
		m.SearchFocused = false
		m.searchInput.Blur()
		return m
	}
	m.searchInput, _ = m.searchInput.Update(msg)
	m.Search = m.searchInput.Value()
	m.Cursor[m.Tab] = 0
	return m
}

func (m *Model) applyToast(ev notify.Event) {
	switch ev.Phase {
	case notify.PhaseShown:
		m.Toasts = append(m.Toasts, ev.Toast)
		if len(m.Toasts) > maxVisibleToasts {
			m.Toasts = m.Toasts[len(m.Toasts)-maxVisibleToasts:]
		}
	case notify.PhaseExpired:
		kept := make([]notify.Toast, 0, len(m.Toasts))
		for _, t := range m.Toasts {
			if t.ID != ev.Toast.ID {
				kept = append(kept, t)
			}
		}
		m.Toasts = kept
	}
}

func (m Model) submitting() bool {
	return m.ws.Tasks.Form().Submitting() || m.ws.Notes.Form().Submitting()
}

func (m Model) View() string {
	if m.Quitting {
		if m.SignedOut {
			return "signed out\n"
		}
		return ""
	}

	main := m.renderMainPanel()
	if m.HelpVisible {
		main += "\n\n" + m.renderHelpView()
	}
	overlay := ""
	if m.dialogOpen() {
		overlay = m.renderCreateDialog()
	}
	if m.Palette.Active {
		main = views.RenderCommandPalette(true, m.commandInput.View()) + "\n\n" + main
	}

	return views.RenderApp(views.AppData{
		Header:       m.renderHeader(),
		Sidebar:      m.renderSidebar(),
		Main:         main,
		Overlay:      overlay,
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotifications(),
		Footer: fmt.Sprintf("keys: %s tasks | %s notes | %s search | %s/%s category | %s add | %s cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Notes, m.Keys.Search, m.Keys.Category, m.Keys.Previous, m.Keys.Add, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderHeader() string {
	name := m.ws.Session.DisplayName()
	state := "signed in"
	if !m.ws.Session.Active() {
		state = "signed out"
	}
	return strings.Join([]string{
		"taskkeeper",
		fmt.Sprintf("Hello, %s", name),
		state,
		fmt.Sprintf("tab: %s", m.Tab),
	}, " | ")
}
