// Package todo holds the Todo entity and the DTO constructors that validate
// inbound payloads before they reach a repository.
package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/domain"
)

const (
	msgIDRequired      = "Id is required"
	msgTextRequired    = "Text is required"
	msgInvalidComplete = "CompletedAt is not a valid date"
)

// Todo is a validated TODO item. A nil CompletedAt means not completed.
type Todo struct {
	ID          int64
	Text        string
	CompletedAt *time.Time
}

// IsCompleted reports whether the item has a completion timestamp.
func (t *Todo) IsCompleted() bool {
	return t.CompletedAt != nil
}

// Record is the plain row shape a datasource reads from its store.
type Record struct {
	ID          int64
	Text        string
	CompletedAt *time.Time
}

// FromRecord validates a store record and builds a Todo from it.
// Returns a *domain.ValidationError when the record breaks an entity invariant.
func FromRecord(r Record) (*Todo, error) {
	if r.ID <= 0 {
		return nil, domain.NewValidationError("id", msgIDRequired)
	}
	if strings.TrimSpace(r.Text) == "" {
		return nil, domain.NewValidationError("text", msgTextRequired)
	}

	var completedAt *time.Time
	if r.CompletedAt != nil {
		if r.CompletedAt.IsZero() {
			return nil, domain.NewValidationError("completedAt", msgInvalidComplete)
		}
		ts := r.CompletedAt.UTC()
		completedAt = &ts
	}

	return &Todo{
		ID:          r.ID,
		Text:        r.Text,
		CompletedAt: completedAt,
	}, nil
}

// FromStored converts a record read back from a store. A stored record
// that breaks an entity invariant is the store's fault, so the error matches
// domain.ErrStorage rather than domain.ErrValidation.
func FromStored(op string, r Record) (*Todo, error) {
	t, err := FromRecord(r)
	if err != nil {
		return nil, InvalidStored(op, err)
	}
	return t, nil
}

// FromStoredList converts a batch of stored records, stopping at the first
// invalid one. The result is never nil.
func FromStoredList(op string, records []Record) ([]Todo, error) {
	todos := make([]Todo, 0, len(records))
	for _, r := range records {
		t, err := FromStored(op, r)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, nil
}

// InvalidStored wraps a record-conversion failure as a storage fault. The
// cause is flattened to text so the chain no longer matches
// domain.ErrValidation.
func InvalidStored(op string, err error) error {
	return domain.StorageFailure(op, fmt.Errorf("invalid stored record: %s", err.Error()))
}
