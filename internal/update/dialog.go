package update

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskkeeper/internal/controller"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/views"
)

// openDialog shows the create form for kind. A draft kept from a failed
// submit is restored into the inputs; title, when set, replaces its title.
func (m Model) openDialog(kind model.Kind, title string) Model {
	m.Dialog = DialogState{Kind: kind, Field: fieldTitle}
	m.HelpVisible = false
	m.SearchFocused = false
	m.searchInput.Blur()

	var draftTitle, draftBody string
	if kind == model.KindNote {
		form := m.ws.Notes.Form()
		form.Open()
		d := form.Draft()
		draftTitle, draftBody = d.Title, d.Content
	} else {
		form := m.ws.Tasks.Form()
		form.Open()
		d := form.Draft()
		draftTitle, draftBody = d.Title, d.Description
	}
	if title != "" {
		draftTitle = title
	}
	m.titleInput.SetValue(draftTitle)
	m.bodyArea.SetValue(draftBody)
	m.focusDialogField()
	m.syncDraft()
	return m
}

func (m *Model) focusDialogField() {
	if m.Dialog.Field == fieldBody {
		m.titleInput.Blur()
		m.bodyArea.Focus()
		return
	}
	m.bodyArea.Blur()
	m.titleInput.Focus()
}

// syncDraft copies the text inputs into the controller's draft.
func (m *Model) syncDraft() {
	title, body := m.titleInput.Value(), m.bodyArea.Value()
	if m.Dialog.Kind == model.KindNote {
		m.ws.Notes.Form().Edit(func(d model.NoteFields) model.NoteFields {
			d.Title, d.Content = title, body
			return d
		})
		return
	}
	m.ws.Tasks.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Title, d.Description = title, body
		return d
	})
}

func (m Model) closeDialog() Model {
	if m.Dialog.Kind == model.KindNote {
		m.ws.Notes.Form().Close()
	} else {
		m.ws.Tasks.Form().Close()
	}
	m.titleInput.Blur()
	m.bodyArea.Blur()
	return m
}

func (m *Model) resetDialogInputs() {
	m.titleInput.SetValue("")
	m.bodyArea.SetValue("")
	m.titleInput.Blur()
	m.bodyArea.Blur()
	m.Dialog.Field = fieldTitle
}

func (m Model) submitDialog() (Model, tea.Cmd) {
	if m.dialogSubmitting() {
		return m, nil
	}
	m.syncDraft()
	m.Status = StatusBar{Text: "saving " + string(m.Dialog.Kind)}
	return m, tea.Batch(submitCmd(m.ctx, m.ws, m.Dialog.Kind), m.spinner.Tick)
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialogSubmitting() {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		return m.closeDialog(), nil
	case "tab", "shift+tab":
		if m.Dialog.Field == fieldTitle {
			m.Dialog.Field = fieldBody
		} else {
			m.Dialog.Field = fieldTitle
		}
		m.focusDialogField()
		return m, nil
	case "ctrl+s":
		return m.submitDialog()
	case "enter":
		if m.Dialog.Field == fieldTitle {
			return m.submitDialog()
		}
	case "ctrl+t":
		m.cycleDraftCategory()
		return m, nil
	case "ctrl+o":
		m.cycleDraftOption()
		return m, nil
	}

	var cmd tea.Cmd
	if m.Dialog.Field == fieldBody {
		m.bodyArea, cmd = m.bodyArea.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	m.syncDraft()
	return m, cmd
}

func (m *Model) cycleDraftCategory() {
	if m.Dialog.Kind == model.KindNote {
		m.ws.Notes.Form().Edit(func(d model.NoteFields) model.NoteFields {
			d.Category = model.NextCategory(d.Category, false)
			return d
		})
		return
	}
	m.ws.Tasks.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Category = model.NextCategory(d.Category, false)
		return d
	})
}

// cycleDraftOption steps the kind specific option: priority for tasks, color
// for notes.
func (m *Model) cycleDraftOption() {
	if m.Dialog.Kind == model.KindNote {
		m.ws.Notes.Form().Edit(func(d model.NoteFields) model.NoteFields {
			d.Color = d.Color.Next()
			return d
		})
		return
	}
	m.ws.Tasks.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Priority = d.Priority.Next()
		return d
	})
}

func (m Model) renderCreateDialog() string {
	data := views.CreateDialogData{
		Kind:       string(m.Dialog.Kind),
		TitleView:  m.titleInput.View(),
		BodyView:   m.bodyArea.View(),
		Submitting: m.dialogSubmitting(),
		Spinner:    m.spinner.View(),
	}
	if m.Dialog.Kind == model.KindNote {
		form := m.ws.Notes.Form()
		d := form.Draft()
		data.Category = d.Category.Label()
		data.OptionLabel = "color"
		data.OptionValue = d.Color.Label()
		data.Failed = form.State() == controller.FormFailed
	} else {
		form := m.ws.Tasks.Form()
		d := form.Draft()
		data.Category = d.Category.Label()
		data.OptionLabel = "priority"
		data.OptionValue = d.Priority.Label()
		data.Failed = form.State() == controller.FormFailed
	}
	return views.RenderCreateDialog(data)
}

func isValidation(err error) bool {
	return errors.Is(err, model.ErrEmptyTitle) ||
		errors.Is(err, model.ErrInvalidCategory) ||
		errors.Is(err, model.ErrInvalidPriority) ||
		errors.Is(err, model.ErrInvalidColor)
}

func validationText(err error) string {
	if errors.Is(err, model.ErrEmptyTitle) {
		return "a title is required"
	}
	return err.Error()
}
