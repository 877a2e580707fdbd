package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("storage: not found")
	ErrOwnerMissing = errors.New("storage: owner id is required")
)

// Repository is the persisted store. Every read and write is scoped to the
// owner id carried by the call; a row owned by someone else is reported as
// ErrNotFound.
type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, ownerID, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateNote(ctx context.Context, in Note) error
	GetNote(ctx context.Context, ownerID, id string) (Note, error)
	UpdateNote(ctx context.Context, in Note) error
	DeleteNote(ctx context.Context, ownerID, id string) error
	ListNotes(ctx context.Context, filter NoteListFilter) ([]Note, error)

	Close() error
}
