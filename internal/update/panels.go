package update

import (
	"strings"

	"github.com/sandeepkv93/taskkeeper/internal/aggregate"
	"github.com/sandeepkv93/taskkeeper/internal/filter"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/views"
)

const (
	dateLayout  = "Jan 2, 2006"
	previewSize = 80
)

// visibleTasks returns the filtered tasks in display order: pending first,
// then completed.
func (m Model) visibleTasks() []model.Task {
	all, _ := m.ws.TaskStore.Snapshot()
	pending, completed := filter.SplitTasks(filter.Visible(all, m.Search, m.Category))
	return append(pending, completed...)
}

func (m Model) visibleNotes() []model.Note {
	all, _ := m.ws.NoteStore.Snapshot()
	return filter.Visible(all, m.Search, m.Category)
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	i := m.Cursor[TabTasks]
	if i < 0 || i >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[i], true
}

func (m Model) selectedNote() (model.Note, bool) {
	notes := m.visibleNotes()
	i := m.Cursor[TabNotes]
	if i < 0 || i >= len(notes) {
		return model.Note{}, false
	}
	return notes[i], true
}

func (m Model) visibleLen(tab Tab) int {
	if tab == TabNotes {
		return len(m.visibleNotes())
	}
	return len(m.visibleTasks())
}

func (m *Model) moveCursor(delta int) {
	m.Cursor[m.Tab] = clamp(m.Cursor[m.Tab]+delta, m.visibleLen(m.Tab))
}

func (m *Model) clampCursors() {
	for _, tab := range []Tab{TabTasks, TabNotes} {
		m.Cursor[tab] = clamp(m.Cursor[tab], m.visibleLen(tab))
	}
}

func (m Model) renderSidebar() string {
	entries := aggregate.Sidebar(m.ws.Aggregator.Counts())
	data := views.SidebarData{
		SearchView:    m.searchInput.View(),
		SearchFocused: m.SearchFocused,
		Entries:       make([]views.SidebarEntryData, 0, len(entries)),
	}
	for i, e := range entries {
		key := "all"
		if i > 0 {
			key = string(e.Category)
		}
		data.Entries = append(data.Entries, views.SidebarEntryData{
			Key:      key,
			Label:    e.Label,
			Count:    e.Count,
			Selected: e.Category == m.Category,
		})
	}
	return views.RenderSidebar(data)
}

func (m Model) renderMainPanel() string {
	if m.Tab == TabNotes {
		return m.renderNotePanel()
	}
	return m.renderTaskPanel()
}

func (m Model) renderTaskPanel() string {
	data := views.TaskPanelData{
		Loading:   m.Loading && !m.ws.TaskStore.Loaded(),
		Spinner:   m.spinner.View(),
		Searching: strings.TrimSpace(m.Search) != "",
	}
	if data.Loading {
		return views.RenderTaskPanel(data)
	}

	tasks := m.visibleTasks()
	stats := filter.Stats(tasks)
	data.PendingCount, data.CompletedCount, data.Total = stats.Pending, stats.Completed, stats.Total
	for i, t := range tasks {
		item := views.TaskItemData{
			ID:        t.ID,
			Title:     t.Title,
			Priority:  t.Priority.Label(),
			Category:  t.Category.Label(),
			CreatedAt: t.CreatedAt.Local().Format(dateLayout),
			Completed: t.Completed,
			Selected:  i == m.Cursor[TabTasks],
		}
		if t.DueDate != nil {
			item.DueDate = t.DueDate.Format(dateLayout)
		}
		if t.Completed {
			data.Completed = append(data.Completed, item)
		} else {
			data.Pending = append(data.Pending, item)
		}
	}
	return views.RenderTaskPanel(data)
}

func (m Model) renderNotePanel() string {
	data := views.NotePanelData{
		Loading:   m.Loading && !m.ws.NoteStore.Loaded(),
		Spinner:   m.spinner.View(),
		Searching: strings.TrimSpace(m.Search) != "",
	}
	if data.Loading {
		return views.RenderNotePanel(data)
	}

	notes := m.visibleNotes()
	data.Total = len(notes)
	noteCounts := m.ws.Aggregator.Counts().Notes
	for _, c := range model.Categories() {
		data.Categories = append(data.Categories, views.NoteCategoryCount{Label: c.Label(), Count: noteCounts.Count(c)})
	}
	for i, n := range notes {
		selected := i == m.Cursor[TabNotes]
		data.Cards = append(data.Cards, views.NoteCardData{
			ID:         n.ID,
			Title:      n.Title,
			Category:   n.Category.Label(),
			ColorLabel: n.Color.Label(),
			Color:      string(n.Color),
			UpdatedAt:  n.UpdatedAt.Local().Format(dateLayout),
			Preview:    truncate(firstLine(n.Content), previewSize),
			Selected:   selected,
		})
		if selected {
			data.Detail = views.RenderMarkdown(n.Content, 64)
		}
	}
	return views.RenderNotePanel(data)
}

func (m Model) renderNotifications() string {
	if len(m.Toasts) == 0 {
		return ""
	}
	out := make([]views.ToastData, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		out = append(out, views.ToastData{
			Title:       t.Title,
			Description: t.Description,
			Severity:    string(t.Severity),
		})
	}
	return views.RenderNotifications(out)
}
