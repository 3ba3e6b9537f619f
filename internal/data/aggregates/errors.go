package aggregates

import (
	"context"
	"errors"
	"strings"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrNotFound indicates a referenced row does not exist.
	ErrNotFound = errors.New("aggregate not found")
	// ErrConflict indicates a uniqueness or business-state rule violation.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
)

// taggedError keeps the caller-facing message as Error() and the kind as the unwrap target.
type taggedError struct {
	kind error
	msg  string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.kind }

func tag(kind error, msg string) error {
	return &taggedError{kind: kind, msg: strings.TrimSpace(msg)}
}

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error { return tag(ErrValidation, msg) }

// NotFoundError tags an error as a missing referenced row.
func NotFoundError(msg string) error { return tag(ErrNotFound, msg) }

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error { return tag(ErrConflict, msg) }

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error { return tag(ErrRetryable, msg) }

const (
	msgDuplicate = "record already exists"
	msgTransient = "store temporarily unavailable"
)

// MapError maps infrastructure/domain failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	switch {
	case errors.Is(err, ErrValidation):
		return domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	case errors.Is(err, ErrNotFound):
		return domainagg.NewError(domainagg.CodeNotFound, op, err.Error(), err)
	case errors.Is(err, ErrConflict):
		return domainagg.NewError(domainagg.CodeConflict, op, err.Error(), err)
	case errors.Is(err, ErrRetryable):
		return domainagg.NewError(domainagg.CodeRetryable, op, err.Error(), err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.NewError(domainagg.CodeNotFound, op, "record not found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.NewError(domainagg.CodeRetryable, op, msgTransient, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeConflict, op, msgDuplicate, err) // unique_violation
		case "40001", "40P01", "55P03":
			return domainagg.NewError(domainagg.CodeRetryable, op, msgTransient, err) // serialization/deadlock/lock_not_available
		}
		return domainagg.Wrap(domainagg.CodeStore, op, err)
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return domainagg.NewError(domainagg.CodeConflict, op, msgDuplicate, err) // ER_DUP_ENTRY
		case 1205, 1213:
			return domainagg.NewError(domainagg.CodeRetryable, op, msgTransient, err) // lock wait timeout/deadlock
		}
		return domainagg.Wrap(domainagg.CodeStore, op, err)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unique constraint failed"), strings.Contains(msg, "duplicate key"):
		return domainagg.NewError(domainagg.CodeConflict, op, msgDuplicate, err)
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"):
		return domainagg.NewError(domainagg.CodeRetryable, op, msgTransient, err)
	default:
		return domainagg.Wrap(domainagg.CodeStore, op, err)
	}
}
