// Package events is the in-process seam through which confirmed writes are
// announced to interested parts of the app.
package events

import (
	"sync"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

type Event interface {
	EventKind() model.Kind
	EntityID() string
}

type EntityCreated struct {
	Kind   model.Kind
	Entity model.Entity
}

func (e EntityCreated) EventKind() model.Kind { return e.Kind }
func (e EntityCreated) EntityID() string {
	if e.Entity == nil {
		return ""
	}
	return e.Entity.EntityID()
}

type EntityUpdated struct {
	Kind   model.Kind
	Entity model.Entity
}

func (e EntityUpdated) EventKind() model.Kind { return e.Kind }
func (e EntityUpdated) EntityID() string {
	if e.Entity == nil {
		return ""
	}
	return e.Entity.EntityID()
}

type EntityDeleted struct {
	Kind model.Kind
	ID   string
}

func (e EntityDeleted) EventKind() model.Kind { return e.Kind }
func (e EntityDeleted) EntityID() string      { return e.ID }

type Handler func(Event)

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Handler
	order  []int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}
