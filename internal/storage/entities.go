package storage

import "time"

// Task is a row of the tasks table. Enum columns are kept as stored text;
// interpretation belongs to the caller.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	Priority    string
	DueDate     *time.Time
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Category  string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskListFilter struct {
	OwnerID string
}

type NoteListFilter struct {
	OwnerID string
}
