package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SidebarEntryData struct {
	Key      string
	Label    string
	Count    int
	Selected bool
}

type SidebarData struct {
	SearchView    string
	SearchFocused bool
	Entries       []SidebarEntryData
}

type TaskItemData struct {
	ID        string
	Title     string
	Priority  string
	Category  string
	DueDate   string
	CreatedAt string
	Completed bool
	Selected  bool
}

type TaskPanelData struct {
	Loading        bool
	Spinner        string
	Searching      bool
	Pending        []TaskItemData
	Completed      []TaskItemData
	PendingCount   int
	CompletedCount int
	Total          int
}

type NoteCardData struct {
	ID         string
	Title      string
	Category   string
	ColorLabel string
	Color      string
	UpdatedAt  string
	Preview    string
	Selected   bool
}

type NoteCategoryCount struct {
	Label string
	Count int
}

type NotePanelData struct {
	Loading    bool
	Spinner    string
	Searching  bool
	Total      int
	Categories []NoteCategoryCount
	Cards      []NoteCardData
	Detail     string
}

type CreateDialogData struct {
	Kind        string
	TitleView   string
	BodyView    string
	Category    string
	OptionLabel string
	OptionValue string
	Submitting  bool
	Spinner     string
	Failed      bool
}

type HelpPanelData struct {
	Tab      string
	Bindings []string
	HelpView string
}

type ToastData struct {
	Title       string
	Description string
	Severity    string
}

func RenderSidebar(data SidebarData) string {
	var b strings.Builder
	b.WriteString("search:\n")
	b.WriteString(data.SearchView + "\n")
	if data.SearchFocused {
		b.WriteString(mutedStyle.Render("[enter/esc] done") + "\n")
	}
	b.WriteString("\ncategories:\n")
	for _, e := range data.Entries {
		line := fmt.Sprintf("%-14s %3d", e.Label, e.Count)
		if e.Selected {
			b.WriteString(selectStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Loading {
		b.WriteString(data.Spinner + " loading tasks...")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("pending: %d | completed: %d | total: %d\n", data.PendingCount, data.CompletedCount, data.Total))
	b.WriteString("actions: [a]add [space]toggle [p]priority [d]delete [r]refresh\n")
	if data.Total == 0 {
		b.WriteString("\nNo tasks found\n")
		if data.Searching {
			b.WriteString(mutedStyle.Render("Try a different search term."))
		} else {
			b.WriteString(mutedStyle.Render("Press [a] to create your first task."))
		}
		return b.String()
	}
	renderTaskSection(&b, "Pending", data.Pending)
	renderTaskSection(&b, "Completed", data.Completed)
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskSection(b *strings.Builder, title string, items []TaskItemData) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n%s (%d):\n", title, len(items)))
	for _, item := range items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		check := "[ ]"
		text := item.Title
		if item.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, check, priorityBadge(item.Priority), text)
		if item.Selected {
			line = selectStyle.Render(line)
		}
		b.WriteString(line + "\n")

		meta := []string{item.Category}
		if item.DueDate != "" {
			meta = append(meta, "due "+item.DueDate)
		}
		meta = append(meta, "created "+item.CreatedAt)
		b.WriteString("      " + mutedStyle.Render(strings.Join(meta, " | ")) + "\n")
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "High":
		return "[HIGH]"
	case "Medium":
		return "[MED]"
	case "Low":
		return "[LOW]"
	default:
		return "[" + strings.ToUpper(priority) + "]"
	}
}

func RenderNotePanel(data NotePanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	if data.Loading {
		b.WriteString(data.Spinner + " loading notes...")
		return b.String()
	}
	counts := make([]string, 0, len(data.Categories))
	for _, c := range data.Categories {
		counts = append(counts, fmt.Sprintf("%s: %d", strings.ToLower(c.Label), c.Count))
	}
	line := fmt.Sprintf("total: %d", data.Total)
	if len(counts) > 0 {
		line += " | " + strings.Join(counts, " | ")
	}
	b.WriteString(line + "\n")
	b.WriteString("actions: [a]add [o]color [d]delete [r]refresh\n")
	if len(data.Cards) == 0 {
		b.WriteString("\nNo notes found\n")
		if data.Searching {
			b.WriteString(mutedStyle.Render("Try a different search term."))
		} else {
			b.WriteString(mutedStyle.Render("Press [a] to create your first note."))
		}
		return b.String()
	}
	for _, card := range data.Cards {
		b.WriteString(renderNoteCard(card) + "\n")
	}
	if data.Detail != "" {
		b.WriteString("\n" + data.Detail)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderNoteCard(card NoteCardData) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(card.Color)).
		Padding(0, 1).
		Width(mainWidth - 6)
	if card.Selected {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	title := card.Title
	if card.Selected {
		title = selectStyle.Render("> " + title)
	}
	body := fmt.Sprintf("%s\n%s", title, mutedStyle.Render(fmt.Sprintf("%s | %s | updated %s", card.Category, card.ColorLabel, card.UpdatedAt)))
	if card.Preview != "" {
		body += "\n" + card.Preview
	}
	return style.Render(body)
}

func RenderCreateDialog(data CreateDialogData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("new %s:\n", data.Kind))
	b.WriteString("title:\n" + data.TitleView + "\n")
	b.WriteString("body:\n" + data.BodyView + "\n")
	b.WriteString(fmt.Sprintf("category: %s   %s: %s\n", data.Category, data.OptionLabel, data.OptionValue))
	switch {
	case data.Submitting:
		b.WriteString(data.Spinner + " saving...")
	case data.Failed:
		b.WriteString(errorStyle.Render("last attempt failed, your draft was kept") + "\n")
		b.WriteString(mutedStyle.Render("[tab]field [ctrl+t]category [ctrl+o]option [ctrl+s]save [esc]close"))
	default:
		b.WriteString(mutedStyle.Render("[tab]field [ctrl+t]category [ctrl+o]option [ctrl+s]save [esc]close"))
	}
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s\n%s", inputView, mutedStyle.Render("add task|note <title>, search <term>, category <name|all>, tab tasks|notes, refresh, signout"))
}

func RenderNotifications(toasts []ToastData) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		line := fmt.Sprintf("[%s] %s", strings.ToUpper(t.Severity), t.Title)
		if t.Description != "" {
			line += ": " + t.Description
		}
		if t.Severity == "error" {
			line = errorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.Tab),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
