// Package store keeps the authoritative in-memory collection of one entity
// kind for the signed-in owner. It only changes after the backend has
// confirmed a write; nothing here talks to the backend itself.
package store

import (
	"sync"

	"github.com/sandeepkv93/taskkeeper/internal/model"
)

type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpReset  Op = "reset"
)

type Change struct {
	Kind    model.Kind
	Op      Op
	ID      string
	Version uint64
}

// Mutation describes a confirmed remote write to fold into the store.
type Mutation[T model.Entity] struct {
	Op     Op
	Entity T
	ID     string
}

func Created[T model.Entity](entity T) Mutation[T] {
	return Mutation[T]{Op: OpCreate, Entity: entity, ID: entity.EntityID()}
}

func Updated[T model.Entity](entity T) Mutation[T] {
	return Mutation[T]{Op: OpUpdate, Entity: entity, ID: entity.EntityID()}
}

func Deleted[T model.Entity](id string) Mutation[T] {
	return Mutation[T]{Op: OpDelete, ID: id}
}

type Store[T model.Entity] struct {
	kind model.Kind

	mu      sync.RWMutex
	items   []T
	owner   string
	loaded  bool
	version uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

func New[T model.Entity](kind model.Kind) *Store[T] {
	return &Store[T]{kind: kind, subs: make(map[int]func(Change))}
}

func (s *Store[T]) Kind() model.Kind { return s.kind }

// Load replaces the whole collection for ownerID, keeping the given order.
func (s *Store[T]) Load(ownerID string, items []T) {
	s.mu.Lock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.owner = ownerID
	s.loaded = true
	s.version++
	change := Change{Kind: s.kind, Op: OpLoad, Version: s.version}
	s.mu.Unlock()

	s.notify(change)
}

// Apply folds a confirmed mutation into the collection. It reports whether
// anything changed; unknown ids and unloaded stores are no-ops.
func (s *Store[T]) Apply(m Mutation[T]) bool {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false
	}
	idx := s.indexLocked(m.ID)
	switch m.Op {
	case OpCreate:
		if idx >= 0 {
			s.items[idx] = m.Entity
		} else {
			s.items = append([]T{m.Entity}, s.items...)
		}
	case OpUpdate:
		if idx < 0 {
			s.mu.Unlock()
			return false
		}
		s.items[idx] = m.Entity
	case OpDelete:
		if idx < 0 {
			s.mu.Unlock()
			return false
		}
		s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	default:
		s.mu.Unlock()
		return false
	}
	s.version++
	change := Change{Kind: s.kind, Op: m.Op, ID: m.ID, Version: s.version}
	s.mu.Unlock()

	s.notify(change)
	return true
}

// Snapshot returns a copy of the items. Before the first load it returns
// nil, false so callers can tell "not loaded" from "empty".
func (s *Store[T]) Snapshot() ([]T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, false
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, true
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Owner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Reset discards the collection and the owner binding.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.owner = ""
	s.loaded = false
	s.version++
	change := Change{Kind: s.kind, Op: OpReset, Version: s.version}
	s.mu.Unlock()

	s.notify(change)
}

// Subscribe registers fn for every change. Handlers run synchronously on the
// mutating goroutine after the store lock has been released.
func (s *Store[T]) Subscribe(fn func(Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store[T]) notify(change Change) {
	s.subMu.Lock()
	handlers := make([]func(Change), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			handlers = append(handlers, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range handlers {
		fn(change)
	}
}

func (s *Store[T]) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range s.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
