package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// fixed width so that text ordering in SQL matches time ordering
	sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
	sqliteDateLayout = "2006-01-02"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return ErrOwnerMissing
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, completed, priority, due_date, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.OwnerID, in.Title, nullString(in.Description), boolInt(in.Completed), in.Priority,
		nullDate(in.DueDate), in.Category, mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, ownerID, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, completed, priority, due_date, category, created_at, updated_at
		FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, priority = ?, due_date = ?, category = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		in.Title, nullString(in.Description), boolInt(in.Completed), in.Priority, nullDate(in.DueDate),
		in.Category, mustTime(in.UpdatedAt), in.ID, in.OwnerID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListTasks returns the owner's tasks, most recently created first.
func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	if strings.TrimSpace(filter.OwnerID) == "" {
		return nil, ErrOwnerMissing
	}
	query := `SELECT id, owner_id, title, description, completed, priority, due_date, category, created_at, updated_at
		FROM tasks WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, filter.OwnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateNote(ctx context.Context, in Note) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return ErrOwnerMissing
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, owner_id, title, content, category, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.OwnerID, in.Title, nullString(in.Content), in.Category, in.Color,
		mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetNote(ctx context.Context, ownerID, id string) (Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, content, category, color, created_at, updated_at
		FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return note, nil
}

func (r *SQLiteRepository) UpdateNote(ctx context.Context, in Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, category = ?, color = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		in.Title, nullString(in.Content), in.Category, in.Color, mustTime(in.UpdatedAt), in.ID, in.OwnerID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteNote(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// ListNotes returns the owner's notes, most recently updated first.
func (r *SQLiteRepository) ListNotes(ctx context.Context, filter NoteListFilter) ([]Note, error) {
	if strings.TrimSpace(filter.OwnerID) == "" {
		return nil, ErrOwnerMissing
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, content, category, color, created_at, updated_at
		FROM notes WHERE owner_id = ?
		ORDER BY updated_at DESC, id DESC`, filter.OwnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Note, 0)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func nullString(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}

func nullDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(sqliteDateLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteDateLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var description sql.NullString
	var completed int
	var due sql.NullString
	var created, updated string
	if err := s.Scan(&out.ID, &out.OwnerID, &out.Title, &description, &completed, &out.Priority, &due, &out.Category, &created, &updated); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Task{}, err
	}
	dueDate, err := parseNullableDate(due)
	if err != nil {
		return Task{}, err
	}
	out.Description = description.String
	out.Completed = completed == 1
	out.DueDate = dueDate
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanNote(s scanner) (Note, error) {
	var out Note
	var content sql.NullString
	var created, updated string
	if err := s.Scan(&out.ID, &out.OwnerID, &out.Title, &content, &out.Category, &out.Color, &created, &updated); err != nil {
		return Note{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Note{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Note{}, err
	}
	out.Content = content.String
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
