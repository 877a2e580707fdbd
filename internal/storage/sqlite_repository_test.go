package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskkeeper-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")
	due := parseRFC3339(t, "2026-02-20T00:00:00Z")

	task := Task{
		ID:          "task-1",
		OwnerID:     "owner-a",
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    "high",
		DueDate:     &due,
		Category:    "work",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, "owner-a", task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Category != "work" || got.Completed {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("unexpected due date: %v", got.DueDate)
	}

	task.Completed = true
	task.UpdatedAt = created.Add(time.Hour)
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	listed, err := repo.ListTasks(ctx, TaskListFilter{OwnerID: "owner-a"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != task.ID || !listed[0].Completed {
		t.Fatalf("unexpected task list: %#v", listed)
	}

	if err := repo.DeleteTask(ctx, "owner-a", task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	_, err = repo.GetTask(ctx, "owner-a", task.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestTasksAreScopedToOwner(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "t-a", OwnerID: "owner-a", Title: "mine", Priority: "low", Category: "personal", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := repo.GetTask(ctx, "owner-b", "t-a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound reading foreign row, got %v", err)
	}
	if err := repo.DeleteTask(ctx, "owner-b", "t-a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting foreign row, got %v", err)
	}
	foreign := Task{ID: "t-a", OwnerID: "owner-b", Title: "hijack", Priority: "low", Category: "personal", UpdatedAt: now}
	if err := repo.UpdateTask(ctx, foreign); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound updating foreign row, got %v", err)
	}
	list, err := repo.ListTasks(ctx, TaskListFilter{OwnerID: "owner-b"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no rows for owner-b, got %#v", list)
	}
	if _, err := repo.ListTasks(ctx, TaskListFilter{}); err != ErrOwnerMissing {
		t.Fatalf("expected ErrOwnerMissing, got %v", err)
	}
}

func TestListTasksNewestFirst(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := parseRFC3339(t, "2026-02-09T12:00:00Z")

	for i, id := range []string{"old", "mid", "new"} {
		at := base.Add(time.Duration(i) * 500 * time.Millisecond)
		if err := repo.CreateTask(ctx, Task{ID: id, OwnerID: "o", Title: id, Priority: "medium", Category: "work", CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	list, err := repo.ListTasks(ctx, TaskListFilter{OwnerID: "o"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(list) != 3 || list[0].ID != "new" || list[2].ID != "old" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestNoteCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := parseRFC3339(t, "2026-02-09T12:00:00Z")

	first := Note{ID: "n-1", OwnerID: "o", Title: "Groceries", Content: "milk, eggs", Category: "personal", Color: "#fef3c7", CreatedAt: now, UpdatedAt: now}
	second := Note{ID: "n-2", OwnerID: "o", Title: "Ideas", Category: "ideas", Color: "#dbeafe", CreatedAt: now, UpdatedAt: now.Add(time.Minute)}
	for _, n := range []Note{first, second} {
		if err := repo.CreateNote(ctx, n); err != nil {
			t.Fatalf("create note %s: %v", n.ID, err)
		}
	}

	got, err := repo.GetNote(ctx, "o", "n-2")
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if got.Content != "" || got.Color != "#dbeafe" {
		t.Fatalf("unexpected note: %#v", got)
	}

	first.Content = "milk, eggs, bread"
	first.UpdatedAt = now.Add(time.Hour)
	if err := repo.UpdateNote(ctx, first); err != nil {
		t.Fatalf("update note: %v", err)
	}

	list, err := repo.ListNotes(ctx, NoteListFilter{OwnerID: "o"})
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(list) != 2 || list[0].ID != "n-1" {
		t.Fatalf("expected most recently updated first, got %#v", list)
	}

	if err := repo.DeleteNote(ctx, "o", "n-1"); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if err := repo.DeleteNote(ctx, "o", "n-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
