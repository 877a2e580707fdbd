package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/storage"
	"go.uber.org/zap"
)

// OwnerSource supplies the signed-in owner; *session.Session satisfies it.
type OwnerSource interface {
	OwnerID() (string, error)
}

type Option func(*backend)

func WithClock(now func() time.Time) Option {
	return func(b *backend) {
		if now != nil {
			b.now = now
		}
	}
}

func WithIDGenerator(next func() string) Option {
	return func(b *backend) {
		if next != nil {
			b.newID = next
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// backend is the state shared by the SQLite-backed adapters: the repository
// plays the role of the remote store and assigns ids and timestamps.
type backend struct {
	repo   storage.Repository
	owner  OwnerSource
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

func newBackend(repo storage.Repository, owner OwnerSource, opts []Option) backend {
	b := backend{
		repo:   repo,
		owner:  owner,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b backend) currentOwner() (string, error) {
	return b.owner.OwnerID()
}

// requestedOwner checks that a caller-supplied owner id matches the session.
func (b backend) requestedOwner(ownerID string) (string, error) {
	owner, err := b.currentOwner()
	if err != nil {
		return "", err
	}
	if ownerID != owner {
		return "", ErrOwnerMismatch
	}
	return owner, nil
}

type SQLiteTasks struct {
	backend
}

var _ TaskAdapter = (*SQLiteTasks)(nil)

func NewSQLiteTasks(repo storage.Repository, owner OwnerSource, opts ...Option) *SQLiteTasks {
	a := &SQLiteTasks{backend: newBackend(repo, owner, opts)}
	a.logger = a.logger.Named("remote.tasks")
	return a
}

func (a *SQLiteTasks) Kind() model.Kind { return model.KindTask }

func (a *SQLiteTasks) FetchAll(ctx context.Context, ownerID string) ([]model.Task, error) {
	owner, err := a.requestedOwner(ownerID)
	if err != nil {
		return nil, NewError(model.KindTask, OpFetchAll, err)
	}
	rows, err := a.repo.ListTasks(ctx, storage.TaskListFilter{OwnerID: owner})
	if err != nil {
		return nil, NewError(model.KindTask, OpFetchAll, err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, taskFromRow(row))
	}
	a.logger.Debug("fetched tasks", zap.Int("count", len(out)))
	return out, nil
}

func (a *SQLiteTasks) Create(ctx context.Context, fields model.TaskFields) (model.Task, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return model.Task{}, NewError(model.KindTask, OpCreate, err)
	}
	owner, err := a.currentOwner()
	if err != nil {
		return model.Task{}, NewError(model.KindTask, OpCreate, err)
	}
	now := a.now()
	task := model.Task{
		ID:          a.newID(),
		OwnerID:     owner,
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		DueDate:     fields.DueDate,
		Category:    fields.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.repo.CreateTask(ctx, taskToRow(task)); err != nil {
		return model.Task{}, NewError(model.KindTask, OpCreate, err)
	}
	a.logger.Debug("created task", zap.String("id", task.ID))
	return task, nil
}

func (a *SQLiteTasks) Update(ctx context.Context, id string, patch model.TaskPatch) error {
	if err := patch.Validate(); err != nil {
		return NewError(model.KindTask, OpUpdate, err)
	}
	owner, err := a.currentOwner()
	if err != nil {
		return NewError(model.KindTask, OpUpdate, err)
	}
	row, err := a.repo.GetTask(ctx, owner, id)
	if err != nil {
		return NewError(model.KindTask, OpUpdate, err)
	}
	if patch.Empty() {
		return nil
	}
	next := patch.ApplyTo(taskFromRow(row), a.now())
	if err := a.repo.UpdateTask(ctx, taskToRow(next)); err != nil {
		return NewError(model.KindTask, OpUpdate, err)
	}
	a.logger.Debug("updated task", zap.String("id", id))
	return nil
}

func (a *SQLiteTasks) Delete(ctx context.Context, id string) error {
	owner, err := a.currentOwner()
	if err != nil {
		return NewError(model.KindTask, OpDelete, err)
	}
	if err := a.repo.DeleteTask(ctx, owner, id); err != nil {
		return NewError(model.KindTask, OpDelete, err)
	}
	a.logger.Debug("deleted task", zap.String("id", id))
	return nil
}

type SQLiteNotes struct {
	backend
}

var _ NoteAdapter = (*SQLiteNotes)(nil)

func NewSQLiteNotes(repo storage.Repository, owner OwnerSource, opts ...Option) *SQLiteNotes {
	a := &SQLiteNotes{backend: newBackend(repo, owner, opts)}
	a.logger = a.logger.Named("remote.notes")
	return a
}

func (a *SQLiteNotes) Kind() model.Kind { return model.KindNote }

func (a *SQLiteNotes) FetchAll(ctx context.Context, ownerID string) ([]model.Note, error) {
	owner, err := a.requestedOwner(ownerID)
	if err != nil {
		return nil, NewError(model.KindNote, OpFetchAll, err)
	}
	rows, err := a.repo.ListNotes(ctx, storage.NoteListFilter{OwnerID: owner})
	if err != nil {
		return nil, NewError(model.KindNote, OpFetchAll, err)
	}
	out := make([]model.Note, 0, len(rows))
	for _, row := range rows {
		out = append(out, noteFromRow(row))
	}
	a.logger.Debug("fetched notes", zap.Int("count", len(out)))
	return out, nil
}

func (a *SQLiteNotes) Create(ctx context.Context, fields model.NoteFields) (model.Note, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return model.Note{}, NewError(model.KindNote, OpCreate, err)
	}
	owner, err := a.currentOwner()
	if err != nil {
		return model.Note{}, NewError(model.KindNote, OpCreate, err)
	}
	now := a.now()
	note := model.Note{
		ID:        a.newID(),
		OwnerID:   owner,
		Title:     fields.Title,
		Content:   fields.Content,
		Category:  fields.Category,
		Color:     fields.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.repo.CreateNote(ctx, noteToRow(note)); err != nil {
		return model.Note{}, NewError(model.KindNote, OpCreate, err)
	}
	a.logger.Debug("created note", zap.String("id", note.ID))
	return note, nil
}

func (a *SQLiteNotes) Update(ctx context.Context, id string, patch model.NotePatch) error {
	if err := patch.Validate(); err != nil {
		return NewError(model.KindNote, OpUpdate, err)
	}
	owner, err := a.currentOwner()
	if err != nil {
		return NewError(model.KindNote, OpUpdate, err)
	}
	row, err := a.repo.GetNote(ctx, owner, id)
	if err != nil {
		return NewError(model.KindNote, OpUpdate, err)
	}
	if patch.Empty() {
		return nil
	}
	next := patch.ApplyTo(noteFromRow(row), a.now())
	if err := a.repo.UpdateNote(ctx, noteToRow(next)); err != nil {
		return NewError(model.KindNote, OpUpdate, err)
	}
	a.logger.Debug("updated note", zap.String("id", id))
	return nil
}

func (a *SQLiteNotes) Delete(ctx context.Context, id string) error {
	owner, err := a.currentOwner()
	if err != nil {
		return NewError(model.KindNote, OpDelete, err)
	}
	if err := a.repo.DeleteNote(ctx, owner, id); err != nil {
		return NewError(model.KindNote, OpDelete, err)
	}
	a.logger.Debug("deleted note", zap.String("id", id))
	return nil
}

func taskFromRow(row storage.Task) model.Task {
	return model.Task{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
		Priority:    model.Priority(row.Priority),
		DueDate:     row.DueDate,
		Category:    model.Category(row.Category),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func taskToRow(t model.Task) storage.Task {
	return storage.Task{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Category:    string(t.Category),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func noteFromRow(row storage.Note) model.Note {
	return model.Note{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Title:     row.Title,
		Content:   row.Content,
		Category:  model.Category(row.Category),
		Color:     model.NoteColor(row.Color),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func noteToRow(n model.Note) storage.Note {
	return storage.Note{
		ID:        n.ID,
		OwnerID:   n.OwnerID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  string(n.Category),
		Color:     string(n.Color),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
