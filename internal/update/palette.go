package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskkeeper/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m = m.closePalette()
		return m.executePaletteCommand(raw)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand(raw string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m = m.openDialog(a.Kind, a.Title)
			m, next = m.submitDialog()
			return commands.Result{Message: fmt.Sprintf("adding %s: %s", a.Kind, a.Title)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Search = s.Term
			m.searchInput.SetValue(s.Term)
			m.Cursor[m.Tab] = 0
			if s.Term == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", s.Term)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			m.Category = c.Category
			m.Cursor[m.Tab] = 0
			return commands.Result{Message: fmt.Sprintf("category: %s", c.Category.Label())}, nil
		},
		Tab: func(t commands.TabArgs) (commands.Result, error) {
			m.Tab = tabFor(t.Kind)
			return commands.Result{Message: fmt.Sprintf("switched to %s", m.Tab)}, nil
		},
		Refresh: func() (commands.Result, error) {
			m, next = m.refresh()
			return commands.Result{Message: "refreshing"}, nil
		},
		SignOut: func() (commands.Result, error) {
			m.ws.SignOut()
			m.SignedOut = true
			m.Quitting = true
			next = tea.Quit
			return commands.Result{Message: "signed out"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}
