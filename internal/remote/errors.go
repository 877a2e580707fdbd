package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/taskkeeper/internal/model"
	"github.com/sandeepkv93/taskkeeper/internal/session"
	"github.com/sandeepkv93/taskkeeper/internal/storage"
)

type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindAuth       ErrorKind = "auth"
	KindUnknown    ErrorKind = "unknown"
)

type Op string

const (
	OpFetchAll Op = "fetch_all"
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

type Error struct {
	Kind   ErrorKind
	Op     Op
	Entity model.Kind
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Entity, e.Op, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err, classifying it unless it already carries a kind.
func NewError(entity model.Kind, op Op, err error) *Error {
	return &Error{Kind: Classify(err), Op: op, Entity: entity, Err: err}
}

// KindOf reports the taxonomy kind of err. Errors that were never wrapped by
// this package are classified on the fly.
func KindOf(err error) ErrorKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return Classify(err)
}

func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return KindNotFound
	case errors.Is(err, session.ErrSignedOut), errors.Is(err, ErrOwnerMismatch):
		return KindAuth
	case errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidPriority),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, storage.ErrOwnerMissing):
		return KindValidation
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, sql.ErrConnDone):
		return KindNetwork
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint, sqlite3.ErrMismatch, sqlite3.ErrTooBig:
			return KindValidation
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrProtocol:
			return KindNetwork
		case sqlite3.ErrAuth, sqlite3.ErrPerm, sqlite3.ErrReadonly:
			return KindAuth
		}
	}
	return KindUnknown
}
