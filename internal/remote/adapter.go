// Package remote is the only layer that talks to the persisted store. Each
// adapter serves a single entity kind and scopes every call to the owner of
// the current session.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

var ErrOwnerMismatch = errors.New("remote: owner does not match session")

type Patch[T any] interface {
	ApplyTo(entity T, now time.Time) T
	Validate() error
	Empty() bool
}

type Adapter[T model.Entity, F any, P Patch[T]] interface {
	Kind() model.Kind
	FetchAll(ctx context.Context, ownerID string) ([]T, error)
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id string, patch P) error
	Delete(ctx context.Context, id string) error
}

type (
	TaskAdapter = Adapter[model.Task, model.TaskFields, model.TaskPatch]
	NoteAdapter = Adapter[model.Note, model.NoteFields, model.NotePatch]
)

// Registry resolves adapters by entity kind.
type Registry struct {
	mu    sync.RWMutex
	tasks TaskAdapter
	notes NoteAdapter
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterTasks(a TaskAdapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tasks != nil {
		return fmt.Errorf("adapter for %s already registered", model.KindTask)
	}
	r.tasks = a
	return nil
}

func (r *Registry) RegisterNotes(a NoteAdapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notes != nil {
		return fmt.Errorf("adapter for %s already registered", model.KindNote)
	}
	r.notes = a
	return nil
}

func (r *Registry) Tasks() (TaskAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.tasks == nil {
		return nil, fmt.Errorf("adapter for %s not registered", model.KindTask)
	}
	return r.tasks, nil
}

func (r *Registry) Notes() (NoteAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.notes == nil {
		return nil, fmt.Errorf("adapter for %s not registered", model.KindNote)
	}
	return r.notes, nil
}
