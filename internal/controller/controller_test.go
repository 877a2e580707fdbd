package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/taskkeeper/internal/events"
	"github.com/sandeepkv93/taskkeeper/internal/filter"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/remote"
	"github.com/sandeepkv93/taskkeeper/internal/session"
	"github.com/sandeepkv93/taskkeeper/internal/storage"
	"github.com/sandeepkv93/taskkeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTaskAdapter struct {
	mock.Mock
}

func (m *mockTaskAdapter) Kind() model.Kind { return model.KindTask }

func (m *mockTaskAdapter) FetchAll(ctx context.Context, ownerID string) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskAdapter) Create(ctx context.Context, fields model.TaskFields) (model.Task, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *mockTaskAdapter) Update(ctx context.Context, id string, patch model.TaskPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *mockTaskAdapter) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockNoteAdapter struct {
	mock.Mock
}

func (m *mockNoteAdapter) Kind() model.Kind { return model.KindNote }

func (m *mockNoteAdapter) FetchAll(ctx context.Context, ownerID string) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	notes, _ := args.Get(0).([]model.Note)
	return notes, args.Error(1)
}

func (m *mockNoteAdapter) Create(ctx context.Context, fields model.NoteFields) (model.Note, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.Note), args.Error(1)
}

func (m *mockNoteAdapter) Update(ctx context.Context, id string, patch model.NotePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *mockNoteAdapter) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (r *toastRecorder) Notify(t notify.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) all() []notify.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func newDeps(t *testing.T) (Deps, *toastRecorder, *session.Session) {
	t.Helper()
	sess, err := session.New("owner-1", "Owner")
	require.NoError(t, err)
	rec := &toastRecorder{}
	return Deps{
		Session: sess,
		Sink:    rec,
		Bus:     events.NewBus(),
		Now:     func() time.Time { return fixedNow },
	}, rec, sess
}

func newTasks(t *testing.T, seed ...model.Task) (*Tasks, *mockTaskAdapter, *toastRecorder) {
	t.Helper()
	deps, rec, _ := newDeps(t)
	adapter := &mockTaskAdapter{}
	st := store.New[model.Task](model.KindTask)
	st.Load("owner-1", seed)
	return NewTasks(adapter, st, deps), adapter, rec
}

func TestToggleTwiceRestoresWithTwoCalls(t *testing.T) {
	ctrl, adapter, rec := newTasks(t, model.Task{ID: "t1", Title: "Buy milk", Category: model.CategoryPersonal})
	adapter.On("Update", mock.Anything, "t1", mock.AnythingOfType("model.TaskPatch")).Return(nil).Twice()

	first, err := ctrl.Toggle(t.Context(), "t1")
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.Equal(t, fixedNow, first.UpdatedAt)

	second, err := ctrl.Toggle(t.Context(), "t1")
	require.NoError(t, err)
	assert.False(t, second.Completed)

	adapter.AssertNumberOfCalls(t, "Update", 2)
	stored, ok := ctrl.Store().Get("t1")
	require.True(t, ok)
	assert.False(t, stored.Completed)

	toasts := rec.all()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Task completed!", toasts[0].Title)
	assert.Equal(t, "Task marked as pending", toasts[1].Title)
}

func TestToggleFailureLeavesStoreUntouched(t *testing.T) {
	ctrl, adapter, rec := newTasks(t, model.Task{ID: "t1", Title: "Buy milk"})
	adapter.On("Update", mock.Anything, "t1", mock.Anything).
		Return(remote.NewError(model.KindTask, remote.OpUpdate, context.DeadlineExceeded)).Once()

	_, err := ctrl.Toggle(t.Context(), "t1")
	require.Error(t, err)
	assert.Equal(t, remote.KindNetwork, remote.KindOf(err))

	stored, _ := ctrl.Store().Get("t1")
	assert.False(t, stored.Completed)
	toasts := rec.all()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.SeverityError, toasts[0].Severity)
	assert.Equal(t, "Could not update the task", toasts[0].Description)
}

func TestToggleUnknownIDMakesNoCall(t *testing.T) {
	ctrl, adapter, _ := newTasks(t)
	_, err := ctrl.Toggle(t.Context(), "missing")
	require.ErrorIs(t, err, ErrUnknownEntity)
	adapter.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitBlankTitleMakesNoCall(t *testing.T) {
	ctrl, adapter, rec := newTasks(t)
	ctrl.Form().Open()
	ctrl.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Title = "   "
		return d
	})

	_, err := ctrl.Submit(t.Context())
	require.ErrorIs(t, err, model.ErrEmptyTitle)
	assert.Equal(t, FormIdle, ctrl.Form().State())
	assert.True(t, ctrl.Form().IsOpen())
	assert.Equal(t, 0, ctrl.Store().Len())
	assert.Empty(t, rec.all())
	adapter.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitSuccessPrependsResetsAndPublishes(t *testing.T) {
	deps, rec, _ := newDeps(t)
	var published []events.Event
	deps.Bus.Subscribe(func(e events.Event) { published = append(published, e) })

	adapter := &mockTaskAdapter{}
	st := store.New[model.Task](model.KindTask)
	st.Load("owner-1", []model.Task{{ID: "old", Title: "Older"}})
	ctrl := NewTasks(adapter, st, deps)

	ctrl.Form().Open()
	ctrl.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Title = "  Write report "
		d.Category = model.CategoryWork
		return d
	})

	created := model.Task{ID: "new", OwnerID: "owner-1", Title: "Write report", Category: model.CategoryWork, Priority: model.PriorityMedium}
	adapter.On("Create", mock.Anything, mock.MatchedBy(func(f model.TaskFields) bool {
		return f.Title == "Write report" && f.Category == model.CategoryWork && f.Priority == model.PriorityMedium
	})).Return(created, nil).Once()

	got, err := ctrl.Submit(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	items, loaded := st.Snapshot()
	require.True(t, loaded)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)

	assert.Equal(t, FormSucceeded, ctrl.Form().State())
	assert.False(t, ctrl.Form().IsOpen())
	assert.Equal(t, model.DefaultTaskFields(), ctrl.Form().Draft())

	require.Len(t, published, 1)
	assert.Equal(t, "new", published[0].EntityID())
	require.Len(t, rec.all(), 1)
	assert.Equal(t, notify.SeveritySuccess, rec.all()[0].Severity)
	adapter.AssertExpectations(t)
}

func TestSubmitFailureKeepsDraftOpen(t *testing.T) {
	deps, rec, _ := newDeps(t)
	adapter := &mockNoteAdapter{}
	st := store.New[model.Note](model.KindNote)
	st.Load("owner-1", nil)
	ctrl := NewNotes(adapter, st, deps)

	ctrl.Form().Open()
	ctrl.Form().Edit(func(d model.NoteFields) model.NoteFields {
		d.Title = "Groceries"
		d.Content = "eggs"
		return d
	})
	adapter.On("Create", mock.Anything, mock.Anything).
		Return(model.Note{}, errors.New("connection reset")).Once()

	_, err := ctrl.Submit(t.Context())
	require.Error(t, err)
	assert.Equal(t, FormFailed, ctrl.Form().State())
	assert.True(t, ctrl.Form().IsOpen())
	assert.Equal(t, "Groceries", ctrl.Form().Draft().Title)
	assert.Equal(t, 0, st.Len())

	toasts := rec.all()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Could not create the note", toasts[0].Description)
	assert.NotContains(t, toasts[0].Description, "connection reset")
}

func TestSubmitInFlightGuard(t *testing.T) {
	ctrl, adapter, _ := newTasks(t)
	ctrl.Form().Edit(func(d model.TaskFields) model.TaskFields {
		d.Title = "Slow"
		return d
	})

	release := make(chan struct{})
	started := make(chan struct{})
	adapter.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(model.Task{ID: "slow", Title: "Slow"}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Equal(t, FormSubmitting, ctrl.Form().State())
	_, err := ctrl.Submit(t.Context())
	require.ErrorIs(t, err, ErrSubmitInFlight)
	assert.False(t, ctrl.Form().Edit(func(d model.TaskFields) model.TaskFields { return d }))

	close(release)
	require.NoError(t, <-done)
	adapter.AssertNumberOfCalls(t, "Create", 1)
	assert.Equal(t, 1, ctrl.Store().Len())
}

func TestDeleteRemovesFromEveryView(t *testing.T) {
	seed := []model.Task{
		{ID: "t1", Title: "Buy milk", Category: model.CategoryPersonal},
		{ID: "t2", Title: "Write report", Category: model.CategoryWork},
	}
	ctrl, adapter, rec := newTasks(t, seed...)
	adapter.On("Delete", mock.Anything, "t1").Return(nil).Once()

	require.NoError(t, ctrl.Delete(t.Context(), "t1"))

	items, _ := ctrl.Store().Snapshot()
	for _, c := range append([]model.Category{model.CategoryAll}, model.Categories()...) {
		for _, term := range []string{"", "milk", "buy"} {
			for _, task := range filter.Visible(items, term, c) {
				assert.NotEqual(t, "t1", task.ID)
			}
		}
	}
	assert.Equal(t, "Task deleted", rec.all()[0].Title)
}

func TestDeleteFailureKeepsEntity(t *testing.T) {
	ctrl, adapter, rec := newTasks(t, model.Task{ID: "t1", Title: "Buy milk"})
	adapter.On("Delete", mock.Anything, "t1").
		Return(remote.NewError(model.KindTask, remote.OpDelete, storage.ErrNotFound)).Once()

	err := ctrl.Delete(t.Context(), "t1")
	require.Error(t, err)
	assert.Equal(t, remote.KindNotFound, remote.KindOf(err))
	_, ok := ctrl.Store().Get("t1")
	assert.True(t, ok)
	assert.Equal(t, notify.SeverityError, rec.all()[0].Severity)
}

func TestLoadFailureLeavesStoreLoadedEmpty(t *testing.T) {
	deps, rec, _ := newDeps(t)
	adapter := &mockNoteAdapter{}
	st := store.New[model.Note](model.KindNote)
	ctrl := NewNotes(adapter, st, deps)

	adapter.On("FetchAll", mock.Anything, "owner-1").Return(nil, errors.New("offline")).Once()

	err := ctrl.Load(t.Context())
	require.Error(t, err)
	items, loaded := st.Snapshot()
	assert.True(t, loaded)
	assert.Empty(t, items)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "Could not load notes", rec.all()[0].Description)
}

func TestLoadReplacesStore(t *testing.T) {
	ctrl, adapter, rec := newTasks(t, model.Task{ID: "stale"})
	adapter.On("FetchAll", mock.Anything, "owner-1").
		Return([]model.Task{{ID: "b"}, {ID: "a"}}, nil).Once()

	require.NoError(t, ctrl.Load(t.Context()))
	items, _ := ctrl.Store().Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "owner-1", ctrl.Store().Owner())
	assert.Empty(t, rec.all())
}

func TestLoadAfterSignOutIsAuthError(t *testing.T) {
	deps, _, sess := newDeps(t)
	adapter := &mockTaskAdapter{}
	st := store.New[model.Task](model.KindTask)
	ctrl := NewTasks(adapter, st, deps)

	sess.SignOut()
	err := ctrl.Load(t.Context())
	require.Error(t, err)
	assert.Equal(t, remote.KindAuth, remote.KindOf(err))
	adapter.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
}

func TestUpdateNoteValidatesLocally(t *testing.T) {
	deps, rec, _ := newDeps(t)
	adapter := &mockNoteAdapter{}
	st := store.New[model.Note](model.KindNote)
	st.Load("owner-1", []model.Note{{ID: "n1", Title: "Old", Color: model.DefaultNoteColor}})
	ctrl := NewNotes(adapter, st, deps)

	bad := model.NoteColor("#000000")
	_, err := ctrl.Update(t.Context(), "n1", model.NotePatch{Color: &bad})
	require.ErrorIs(t, err, model.ErrInvalidColor)
	assert.Empty(t, rec.all())

	title := "New"
	adapter.On("Update", mock.Anything, "n1", mock.Anything).Return(nil).Once()
	updated, err := ctrl.Update(t.Context(), "n1", model.NotePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	stored, _ := st.Get("n1")
	assert.Equal(t, "New", stored.Title)
}
