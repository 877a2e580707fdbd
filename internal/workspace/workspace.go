// Package workspace wires the per-session graph: adapters, stores,
// controllers, the aggregator and the event bus. Its lifetime is one
// sign-in; signing out discards all cached entities.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskkeeper/internal/aggregate"
	"github.com/sandeepkv93/taskkeeper/internal/controller"
	"github.com/sandeepkv93/taskkeeper/internal/events"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/remote"
	"github.com/sandeepkv93/taskkeeper/internal/session"
	"github.com/sandeepkv93/taskkeeper/internal/storage"
	"github.com/sandeepkv93/taskkeeper/internal/store"
	"go.uber.org/zap"
)

type Options struct {
	Repo    storage.Repository
	Session *session.Session
	Sink    notify.Sink
	Logger  *zap.Logger
	Now     func() time.Time
}

type Workspace struct {
	Session    *session.Session
	Bus        *events.Bus
	Registry   *remote.Registry
	TaskStore  *store.Store[model.Task]
	NoteStore  *store.Store[model.Note]
	Tasks      *controller.Tasks
	Notes      *controller.Notes
	Aggregator *aggregate.Aggregator

	logger *zap.Logger
}

func New(opts Options) (*Workspace, error) {
	if opts.Repo == nil {
		return nil, errors.New("workspace: repository is required")
	}
	if opts.Session == nil {
		return nil, errors.New("workspace: session is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var remoteOpts []remote.Option
	remoteOpts = append(remoteOpts, remote.WithLogger(logger))
	if opts.Now != nil {
		remoteOpts = append(remoteOpts, remote.WithClock(opts.Now))
	}

	registry := remote.NewRegistry()
	if err := registry.RegisterTasks(remote.NewSQLiteTasks(opts.Repo, opts.Session, remoteOpts...)); err != nil {
		return nil, err
	}
	if err := registry.RegisterNotes(remote.NewSQLiteNotes(opts.Repo, opts.Session, remoteOpts...)); err != nil {
		return nil, err
	}
	return build(registry, opts.Session, opts.Sink, logger, opts.Now)
}

// build assembles the graph around already registered adapters.
func build(registry *remote.Registry, sess *session.Session, sink notify.Sink, logger *zap.Logger, now func() time.Time) (*Workspace, error) {
	taskAdapter, err := registry.Tasks()
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	noteAdapter, err := registry.Notes()
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}

	bus := events.NewBus()
	taskStore := store.New[model.Task](model.KindTask)
	noteStore := store.New[model.Note](model.KindNote)
	deps := controller.Deps{
		Session: sess,
		Sink:    sink,
		Bus:     bus,
		Logger:  logger,
		Now:     now,
	}

	w := &Workspace{
		Session:    sess,
		Bus:        bus,
		Registry:   registry,
		TaskStore:  taskStore,
		NoteStore:  noteStore,
		Tasks:      controller.NewTasks(taskAdapter, taskStore, deps),
		Notes:      controller.NewNotes(noteAdapter, noteStore, deps),
		Aggregator: aggregate.New(taskStore, noteStore, bus),
		logger:     logger.Named("workspace"),
	}
	sess.OnSignOut(w.discard)
	return w, nil
}

// Load fetches both collections. Each kind is loaded independently so one
// failing does not hide the other.
func (w *Workspace) Load(ctx context.Context) error {
	return errors.Join(w.Tasks.Load(ctx), w.Notes.Load(ctx))
}

// SignOut invalidates the session; the registered hook discards the stores.
func (w *Workspace) SignOut() {
	w.Session.SignOut()
}

func (w *Workspace) Close() {
	w.Aggregator.Close()
}

func (w *Workspace) discard() {
	w.TaskStore.Reset()
	w.NoteStore.Reset()
	w.Tasks.Form().Reset()
	w.Notes.Form().Reset()
	w.logger.Info("session ended, caches discarded")
}
