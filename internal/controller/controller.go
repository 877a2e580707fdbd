// Package controller coordinates every user-initiated change: the backend is
// asked first and the local store only follows a confirmed write. Failures
// become a single generic toast; the detail goes to the log.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/taskkeeper/internal/events"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/notify"
	"github.com/sandeepkv93/taskkeeper/internal/remote"
	"github.com/sandeepkv93/taskkeeper/internal/store"
	"go.uber.org/zap"
)

var ErrUnknownEntity = errors.New("controller: entity is not in the store")

type Deps struct {
	Session remote.OwnerSource
	Sink    notify.Sink
	Bus     *events.Bus
	Logger  *zap.Logger
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Sink == nil {
		d.Sink = notify.Discard{}
	}
	if d.Bus == nil {
		d.Bus = events.NewBus()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

type messages struct {
	loadFailed   notify.Toast
	created      notify.Toast
	createFailed notify.Toast
	updated      notify.Toast
	updateFailed notify.Toast
	deleted      notify.Toast
	deleteFailed notify.Toast
}

type core[T model.Entity, F Fields[F], P remote.Patch[T]] struct {
	kind    model.Kind
	adapter remote.Adapter[T, F, P]
	store   *store.Store[T]
	form    *Form[F]
	deps    Deps
	logger  *zap.Logger
	msgs    messages
}

func newCore[T model.Entity, F Fields[F], P remote.Patch[T]](
	adapter remote.Adapter[T, F, P],
	st *store.Store[T],
	defaults F,
	msgs messages,
	deps Deps,
) *core[T, F, P] {
	deps = deps.withDefaults()
	return &core[T, F, P]{
		kind:    adapter.Kind(),
		adapter: adapter,
		store:   st,
		form:    NewForm(defaults),
		deps:    deps,
		logger:  deps.Logger.Named("controller").With(zap.String("entity", string(adapter.Kind()))),
		msgs:    msgs,
	}
}

func (c *core[T, F, P]) Form() *Form[F] { return c.form }

func (c *core[T, F, P]) Store() *store.Store[T] { return c.store }

// Load fetches the owner's full collection and replaces the store. On
// failure the store is left loaded and empty.
func (c *core[T, F, P]) Load(ctx context.Context) error {
	if c.deps.Session == nil {
		c.store.Load("", nil)
		return c.failed(remote.OpFetchAll, c.msgs.loadFailed, remote.NewError(c.kind, remote.OpFetchAll, errors.New("no session")))
	}
	owner, err := c.deps.Session.OwnerID()
	if err != nil {
		c.store.Load("", nil)
		return c.failed(remote.OpFetchAll, c.msgs.loadFailed, remote.NewError(c.kind, remote.OpFetchAll, err))
	}
	items, err := c.adapter.FetchAll(ctx, owner)
	if err != nil {
		c.store.Load(owner, nil)
		return c.failed(remote.OpFetchAll, c.msgs.loadFailed, err)
	}
	c.store.Load(owner, items)
	c.logger.Debug("loaded", zap.Int("count", len(items)))
	return nil
}

// Submit sends the form's draft to the backend. A blank or otherwise invalid
// draft is rejected locally without a call or a toast.
func (c *core[T, F, P]) Submit(ctx context.Context) (T, error) {
	var zero T
	fields, err := c.form.begin()
	if err != nil {
		return zero, err
	}

	created, err := c.adapter.Create(ctx, fields)
	if err != nil {
		c.form.fail()
		return zero, c.failed(remote.OpCreate, c.msgs.createFailed, err)
	}

	c.form.succeed()
	c.store.Apply(store.Created(created))
	c.deps.Bus.Publish(events.EntityCreated{Kind: c.kind, Entity: created})
	c.deps.Sink.Notify(c.msgs.created)
	c.logger.Info("created", zap.String("id", created.EntityID()))
	return created, nil
}

// Update applies patch to the entity with the given id once the backend has
// accepted it.
func (c *core[T, F, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	return c.update(ctx, id, patch, c.msgs.updated)
}

func (c *core[T, F, P]) update(ctx context.Context, id string, patch P, success notify.Toast) (T, error) {
	var zero T
	if err := patch.Validate(); err != nil {
		return zero, err
	}
	current, ok := c.store.Get(id)
	if !ok {
		return zero, ErrUnknownEntity
	}
	if err := c.adapter.Update(ctx, id, patch); err != nil {
		return zero, c.failed(remote.OpUpdate, c.msgs.updateFailed, err)
	}

	next := patch.ApplyTo(current, c.deps.Now())
	c.store.Apply(store.Updated(next))
	c.deps.Bus.Publish(events.EntityUpdated{Kind: c.kind, Entity: next})
	c.deps.Sink.Notify(success)
	c.logger.Info("updated", zap.String("id", id))
	return next, nil
}

func (c *core[T, F, P]) Delete(ctx context.Context, id string) error {
	if err := c.adapter.Delete(ctx, id); err != nil {
		return c.failed(remote.OpDelete, c.msgs.deleteFailed, err)
	}
	c.store.Apply(store.Deleted[T](id))
	c.deps.Bus.Publish(events.EntityDeleted{Kind: c.kind, ID: id})
	c.deps.Sink.Notify(c.msgs.deleted)
	c.logger.Info("deleted", zap.String("id", id))
	return nil
}

func (c *core[T, F, P]) failed(op remote.Op, toast notify.Toast, err error) error {
	c.logger.Warn("backend call failed",
		zap.String("op", string(op)),
		zap.String("kind", string(remote.KindOf(err))),
		zap.Error(err),
	)
	c.deps.Sink.Notify(toast)
	return err
}
