package controller

import (
	"context"

	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/remote"
	"github.com/sandeepkv93/taskkeeper/internal/store"
)

type Tasks struct {
	*core[model.Task, model.TaskFields, model.TaskPatch]
}

func NewTasks(adapter remote.TaskAdapter, st *store.Store[model.Task], deps Deps) *Tasks {
	msgs := messages{
		loadFailed:   notify.Failure("Error", "Could not load tasks"),
		created:      notify.Success("Task created!", "Your new task was added."),
		createFailed: notify.Failure("Error", "Could not create the task"),
		updated:      notify.Success("Task updated", "Your changes were saved."),
		updateFailed: notify.Failure("Error", "Could not update the task"),
		deleted:      notify.Success("Task deleted", "The task was removed."),
		deleteFailed: notify.Failure("Error", "Could not delete the task"),
	}
	return &Tasks{core: newCore[model.Task, model.TaskFields, model.TaskPatch](adapter, st, model.DefaultTaskFields(), msgs, deps)}
}

// Toggle flips the completion flag. The store is only touched after the
// backend has accepted the change.
func (t *Tasks) Toggle(ctx context.Context, id string) (model.Task, error) {
	current, ok := t.store.Get(id)
	if !ok {
		return model.Task{}, ErrUnknownEntity
	}
	completed := !current.Completed
	toast := notify.Info("Task marked as pending", "The task was unchecked.")
	if completed {
		toast = notify.Success("Task completed!", "Nice work finishing it.")
	}
	return t.update(ctx, id, model.TaskPatch{Completed: &completed}, toast)
}

type Notes struct {
	*core[model.Note, model.NoteFields, model.NotePatch]
}

func NewNotes(adapter remote.NoteAdapter, st *store.Store[model.Note], deps Deps) *Notes {
	msgs := messages{
		loadFailed:   notify.Failure("Error", "Could not load notes"),
		created:      notify.Success("Note created!", "Your new note was added."),
		createFailed: notify.Failure("Error", "Could not create the note"),
		updated:      notify.Success("Note updated", "Your changes were saved."),
		updateFailed: notify.Failure("Error", "Could not update the note"),
		deleted:      notify.Success("Note deleted", "The note was removed."),
		deleteFailed: notify.Failure("Error", "Could not delete the note"),
	}
	return &Notes{core: newCore[model.Note, model.NoteFields, model.NotePatch](adapter, st, model.DefaultNoteFields(), msgs, deps)}
}
