package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("model: title is required")
	ErrInvalidCategory = errors.New("model: invalid category")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidColor    = errors.New("model: invalid note color")
)

// Entity is the common surface the store, filter and aggregator work on.
type Entity interface {
	EntityID() string
	EntityKind() Kind
	EntityCategory() Category
	SearchFields() (title, body string)
}

type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Task) EntityID() string                   { return t.ID }
func (t Task) EntityKind() Kind                   { return KindTask }
func (t Task) EntityCategory() Category           { return t.Category }
func (t Task) SearchFields() (title, body string) { return t.Title, t.Description }

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return errors.New("model: task owner is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// TaskFields are the client-supplied fields of a new task. Identifier, owner
// and timestamps are assigned by the backend.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
	Category    Category
}

func DefaultTaskFields() TaskFields {
	return TaskFields{
		Priority: PriorityMedium,
		Category: CategoryPersonal,
	}
}

func (f TaskFields) Normalize() TaskFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	if f.Category == "" {
		f.Category = CategoryPersonal
	}
	if f.DueDate != nil {
		d := dateOnly(*f.DueDate)
		f.DueDate = &d
	}
	return f
}

func (f TaskFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if !f.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, f.Priority)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, f.Category)
	}
	return nil
}

type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	Category    *Category
	DueDate     *time.Time
	ClearDue    bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.Category == nil && p.DueDate == nil && !p.ClearDue
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	if p.Category != nil && !p.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *p.Category)
	}
	return nil
}

// ApplyTo returns a copy of t with the patch applied and UpdatedAt set to now.
func (p TaskPatch) ApplyTo(t Task, now time.Time) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ClearDue {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := dateOnly(*p.DueDate)
		t.DueDate = &d
	}
	t.UpdatedAt = now
	return t
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
