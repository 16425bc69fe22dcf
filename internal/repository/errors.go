package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrConflict  = errors.New("record state conflict")
	ErrReference = errors.New("referenced record missing or still in use")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapError converts driver errors into repository sentinels.
func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a clause; expr must contain a single %d for the placeholder index.
func (w *whereBuilder) add(expr string, v any) {
	w.args = append(w.args, v)
	w.clauses = append(w.clauses, fmt.Sprintf(expr, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
