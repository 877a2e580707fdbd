package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskkeeper/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.tabBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Tab:      string(m.Tab),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Notes, Action: "switch to Notes"},
		{Key: m.Keys.Search, Action: "focus search"},
		{Key: m.Keys.Category, Action: "next category"},
		{Key: m.Keys.Add, Action: "create"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) tabBindings() []KeyBinding {
	if m.Tab == TabNotes {
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "o", Action: "cycle color"},
			{Key: m.Keys.Delete, Action: "delete note"},
			{Key: m.Keys.Refresh, Action: "reload"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: "space", Action: "toggle completed"},
		{Key: "p", Action: "cycle priority"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: m.Keys.Refresh, Action: "reload"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.tabBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.tabBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
