package views

import (
	"strings"
	"testing"
)

func TestRenderTaskPanelEmptyStates(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{})
	if !strings.Contains(out, "No tasks found") || !strings.Contains(out, "create your first task") {
		t.Fatalf("unexpected empty panel:\n%s", out)
	}

	out = RenderTaskPanel(TaskPanelData{Searching: true})
	if !strings.Contains(out, "Try a different search term.") {
		t.Fatalf("expected search hint:\n%s", out)
	}

	out = RenderTaskPanel(TaskPanelData{Loading: true, Spinner: "*"})
	if !strings.Contains(out, "loading tasks") || strings.Contains(out, "No tasks found") {
		t.Fatalf("unexpected loading panel:\n%s", out)
	}
}

func TestRenderTaskPanelSections(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{
		Pending:        []TaskItemData{{Title: "Buy milk", Priority: "High", Category: "Personal", CreatedAt: "Mar 1, 2026", Selected: true}},
		Completed:      []TaskItemData{{Title: "Write report", Priority: "Unset", Category: "Uncategorized", CreatedAt: "Mar 1, 2026", Completed: true}},
		PendingCount:   1,
		CompletedCount: 1,
		Total:          2,
	})
	for _, want := range []string{"pending: 1 | completed: 1 | total: 2", "Pending (1)", "Completed (1)", "[HIGH]", "[UNSET]", "Uncategorized", "[x]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderNotificationsAndPalette(t *testing.T) {
	if RenderNotifications(nil) != "" {
		t.Fatal("expected no output without toasts")
	}
	out := RenderNotifications([]ToastData{{Title: "Task created!", Severity: "success"}})
	if !strings.Contains(out, "[SUCCESS] Task created!") {
		t.Fatalf("unexpected toast output: %q", out)
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("expected inactive palette to render nothing")
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("expected blank markdown to render empty")
	}
	out := RenderMarkdown("# Groceries\n\n- eggs", 40)
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "eggs") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
}

func TestRenderNotePanelCounts(t *testing.T) {
	out := RenderNotePanel(NotePanelData{
		Total:      3,
		Categories: []NoteCategoryCount{{Label: "Personal", Count: 1}, {Label: "Work", Count: 2}},
	})
	if !strings.Contains(out, "total: 3 | personal: 1 | work: 2") {
		t.Fatalf("unexpected counts line:\n%s", out)
	}
}
