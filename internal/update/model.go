package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/workspace"
)

type Tab string

const (
	TabTasks Tab = "Tasks"
	TabNotes Tab = "Notes"
)

func (t Tab) Kind() model.Kind {
	if t == TabNotes {
		return model.KindNote
	}
	return model.KindTask
}

func tabFor(kind model.Kind) Tab {
	if kind == model.KindNote {
		return TabNotes
	}
	return TabTasks
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Notes    string
	Search   string
	Add      string
	Toggle   string
	Delete   string
	Refresh  string
	Palette  string
	Help     string
	Quit     string
	Category string
	Previous string
}

type PaletteState struct {
	Active bool
}

type dialogField int

const (
	fieldTitle dialogField = iota
	fieldBody
)

// DialogState tracks which create form is shown. The draft itself lives in
// the controller's form so a failed submit keeps it.
type DialogState struct {
	Kind  model.Kind
	Field dialogField
}

type Model struct {
	ws     *workspace.Workspace
	toasts <-chan notify.Event
	ctx    context.Context

	Tab           Tab
	Search        string
	Category      model.Category
	Cursor        map[Tab]int
	Dialog        DialogState
	Palette       PaletteState
	HelpVisible   bool
	SearchFocused bool
	Toasts        []notify.Toast
	Status        StatusBar
	Keys          GlobalKeyMap
	Loading       bool
	Quitting      bool
	SignedOut     bool

	searchInput  textinput.Model
	titleInput   textinput.Model
	bodyArea     textarea.Model
	commandInput textinput.Model
	spinner      spinner.Model
	helpModel    help.Model
}

const maxVisibleToasts = 4

type LoadedMsg struct {
	Err error
}

type SubmittedMsg struct {
	Kind model.Kind
	Err  error
}

type MutationMsg struct {
	Kind   model.Kind
	Action string
	Err    error
}

type ToastMsg struct {
	Event notify.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// NewModel builds the UI over ws. toasts may be nil when no dispatcher is
// running.
func NewModel(ws *workspace.Workspace, toasts <-chan notify.Event) Model {
	m := Model{
		ws:       ws,
		toasts:   toasts,
		ctx:      context.Background(),
		Tab:      TabTasks,
		Category: model.CategoryAll,
		Cursor:   map[Tab]int{TabTasks: 0, TabNotes: 0},
		Dialog:   DialogState{Kind: model.KindTask},
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Notes:    "2",
			Search:   "f",
			Add:      "a",
			Toggle:   " ",
			Delete:   "d",
			Refresh:  "r",
			Palette:  "/",
			Help:     "?",
			Quit:     "q",
			Category: "c",
			Previous: "C",
		},
		Loading: true,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "? "
	m.searchInput.Placeholder = "search"
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 24

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 60

	m.bodyArea = textarea.New()
	m.bodyArea.SetWidth(62)
	m.bodyArea.SetHeight(6)
	m.bodyArea.ShowLineNumbers = false

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 60

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m Model) dialogOpen() bool {
	if m.ws == nil {
		return false
	}
	if m.Dialog.Kind == model.KindNote {
		return m.ws.Notes.Form().IsOpen()
	}
	return m.ws.Tasks.Form().IsOpen()
}

func (m Model) dialogSubmitting() bool {
	if m.Dialog.Kind == model.KindNote {
		return m.ws.Notes.Form().Submitting()
	}
	return m.ws.Tasks.Form().Submitting()
}
