// Package aggregate maintains per-category counts over the full, unfiltered
// collections. Counts never depend on the active search term or category.
package aggregate

import (
	"sync"

	"github.com/sandeepkv93/taskkeeper/internal/events"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/store"
)

type Tally struct {
	All        int
	ByCategory map[model.Category]int
}

func newTally() Tally {
	t := Tally{ByCategory: make(map[model.Category]int, len(model.Categories()))}
	for _, c := range model.Categories() {
		t.ByCategory[c] = 0
	}
	return t
}

// Count returns the tally for a fixed category or, for CategoryAll, the
// overall total.
func (t Tally) Count(c model.Category) int {
	if c == model.CategoryAll {
		return t.All
	}
	return t.ByCategory[c]
}

type Counts struct {
	Tasks Tally
	Notes Tally
}

func (c Counts) Total(category model.Category) int {
	return c.Tasks.Count(category) + c.Notes.Count(category)
}

func tally[T model.Entity](items []T) Tally {
	t := newTally()
	for _, item := range items {
		t.All++
		if c := item.EntityCategory(); c.IsValid() {
			t.ByCategory[c]++
		}
	}
	return t
}

// Compute counts both collections. Entities with an unrecognised category
// count toward All only.
func Compute(tasks []model.Task, notes []model.Note) Counts {
	return Counts{Tasks: tally(tasks), Notes: tally(notes)}
}

type Entry struct {
	Category model.Category
	Label    string
	Count    int
}

// Sidebar lists "all" followed by the fixed categories with combined counts.
func Sidebar(counts Counts) []Entry {
	cats := append([]model.Category{model.CategoryAll}, model.Categories()...)
	out := make([]Entry, 0, len(cats))
	for _, c := range cats {
		out = append(out, Entry{Category: c, Label: c.Label(), Count: counts.Total(c)})
	}
	return out
}

// Aggregator recomputes Counts whenever either store changes or an entity
// event is published on the bus.
type Aggregator struct {
	tasks *store.Store[model.Task]
	notes *store.Store[model.Note]

	// recomputeMu serializes snapshot and publish so the last change to
	// land is the last one stored.
	recomputeMu sync.Mutex
	mu          sync.RWMutex
	counts      Counts

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Counts)

	unsubs []func()
}

func New(tasks *store.Store[model.Task], notes *store.Store[model.Note], bus *events.Bus) *Aggregator {
	a := &Aggregator{
		tasks: tasks,
		notes: notes,
		subs:  make(map[int]func(Counts)),
	}
	a.recompute()
	a.unsubs = append(a.unsubs,
		tasks.Subscribe(func(store.Change) { a.recompute() }),
		notes.Subscribe(func(store.Change) { a.recompute() }),
	)
	if bus != nil {
		a.unsubs = append(a.unsubs, bus.Subscribe(func(e events.Event) {
			if _, ok := e.(events.EntityCreated); ok {
				a.recompute()
			}
		}))
	}
	return a
}

func (a *Aggregator) Counts() Counts {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counts
}

// Subscribe registers fn to receive every recomputed Counts, in the order
// they were stored. fn must not mutate the stores it is counting.
func (a *Aggregator) Subscribe(fn func(Counts)) func() {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	return func() {
		a.subMu.Lock()
		defer a.subMu.Unlock()
		delete(a.subs, id)
	}
}

// Close detaches the aggregator from the stores and the bus.
func (a *Aggregator) Close() {
	for _, fn := range a.unsubs {
		fn()
	}
	a.unsubs = nil
}

func (a *Aggregator) recompute() {
	a.recomputeMu.Lock()
	defer a.recomputeMu.Unlock()

	tasks, _ := a.tasks.Snapshot()
	notes, _ := a.notes.Snapshot()
	counts := Compute(tasks, notes)

	a.mu.Lock()
	a.counts = counts
	a.mu.Unlock()

	a.subMu.Lock()
	handlers := make([]func(Counts), 0, len(a.subs))
	for i := 0; i < a.nextID; i++ {
		if fn, ok := a.subs[i]; ok {
			handlers = append(handlers, fn)
		}
	}
	a.subMu.Unlock()
	for _, fn := range handlers {
		fn(counts)
	}
}
