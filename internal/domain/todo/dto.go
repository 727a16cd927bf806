package todo

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/domain"
)

const (
	msgTextPropertyRequired = "Text property is required"
	msgTextMustNotBeEmpty   = "Text property must not be empty"
	msgIDNotNumber          = "ID argument is not a number"

	clearCompletedAt = "null"
)

// CreatePayload is the raw input for creating a todo.
type CreatePayload struct {
	Text string
}

// CreateTodo is a validated create request. Only NewCreateTodo builds one.
type CreateTodo struct {
	text string
}

// Text returns the trimmed text to persist.
func (c CreateTodo) Text() string {
	return c.text
}

// NewCreateTodo validates a create payload.
func NewCreateTodo(p CreatePayload) domain.Result[CreateTodo] {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return domain.Fail[CreateTodo](domain.NewValidationError("text", msgTextPropertyRequired))
	}
	return domain.Ok(CreateTodo{text: text})
}

// UpdatePayload is the raw input for updating a todo. ID is the unparsed path
// segment. CompletedAt holds the raw JSON value; nil means the key was absent.
type UpdatePayload struct {
	ID          string
	Text        *string
	CompletedAt json.RawMessage
}

// Values is the partial-update projection: only supplied fields are set.
type Values struct {
	Text *string
	// SetCompletedAt is true when the client supplied completedAt. A nil
	// CompletedAt with SetCompletedAt marks the item as not completed.
	SetCompletedAt bool
	CompletedAt    *time.Time
}

// Apply returns t with the supplied fields overwritten.
func (v Values) Apply(t Todo) Todo {
	if v.Text != nil {
		t.Text = *v.Text
	}
	if v.SetCompletedAt {
		t.CompletedAt = v.CompletedAt
	}
	return t
}

// IsEmpty reports whether no field was supplied.
func (v Values) IsEmpty() bool {
	return v.Text == nil && !v.SetCompletedAt
}

// UpdateTodo is a validated update request. Only NewUpdateTodo builds one.
type UpdateTodo struct {
	id     int64
	values Values
}

// ID returns the target todo id.
func (u UpdateTodo) ID() int64 {
	return u.id
}

// Values returns the fields the client supplied.
func (u UpdateTodo) Values() Values {
	return u.values
}

// ParseID parses a path id used for lookups. Any base-10 integer is
// accepted; ids no store can hold are reported as not found downstream.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", msgIDNotNumber)
	}
	return id, nil
}

// NewUpdateTodo validates an update payload. Unlike ParseID, the id must be
// positive.
func NewUpdateTodo(p UpdatePayload) domain.Result[UpdateTodo] {
	id, err := ParseID(p.ID)
	if err == nil && id <= 0 {
		err = domain.NewValidationError("id", msgIDNotNumber)
	}
	if err != nil {
		return domain.Fail[UpdateTodo](err)
	}

	var values Values

	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		if text == "" {
			return domain.Fail[UpdateTodo](domain.NewValidationError("text", msgTextMustNotBeEmpty))
		}
		values.Text = &text
	}

	set, completedAt, err := parseCompletedAt(p.CompletedAt)
	if err != nil {
		return domain.Fail[UpdateTodo](err)
	}
	values.SetCompletedAt = set
	values.CompletedAt = completedAt

	return domain.Ok(UpdateTodo{id: id, values: values})
}

// parseCompletedAt interprets the raw completedAt JSON value. It reports
// whether the field was supplied and, if so, the normalized timestamp.
func parseCompletedAt(raw json.RawMessage) (bool, *time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false, nil, nil
	}
	if string(raw) == clearCompletedAt {
		return true, nil, nil
	}

	invalid := domain.NewValidationError("completedAt", msgInvalidComplete)

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false, nil, invalid
		}
		switch strings.TrimSpace(s) {
		case "":
			return false, nil, nil
		case clearCompletedAt:
			return true, nil, nil
		}
		ts, err := ParseDate(s)
		if err != nil {
			return false, nil, invalid
		}
		return true, &ts, nil
	default:
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return false, nil, invalid
		}
		ts, err := FromEpochMillis(ms)
		if err != nil {
			return false, nil, invalid
		}
		return true, &ts, nil
	}
}
