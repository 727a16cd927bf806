package remote

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

// wireTimeLayout is the completedAt format the downstream API emits and
// accepts.
const wireTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// todoDTO matches the downstream todo representation.
type todoDTO struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	CompletedAt *string `json:"completedAt"`
}

// createRequestDTO is the POST /api/todos body.
type createRequestDTO struct {
	Text string `json:"text"`
}

// updateRequestDTO is the PUT /api/todos/{id} body. Omitted fields are left
// untouched downstream; a JSON null completedAt clears it.
type updateRequestDTO struct {
	Text        *string         `json:"text,omitempty"`
	CompletedAt json.RawMessage `json:"completedAt,omitempty"`
}

// errorDTO is the downstream error envelope.
type errorDTO struct {
	Error string `json:"error"`
}

// toDomainTodo validates a downstream record and converts it.
func toDomainTodo(dto *todoDTO) (*todo.Todo, error) {
	rec := todo.Record{ID: dto.ID, Text: dto.Text}
	if dto.CompletedAt != nil {
		ts, err := todo.ParseDate(*dto.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("todo %d: completedAt %q: %w", dto.ID, *dto.CompletedAt, err)
		}
		rec.CompletedAt = &ts
	}
	return todo.FromRecord(rec)
}

// toDomainTodoList converts a downstream list, stopping at the first invalid
// record.
func toDomainTodoList(dtos []todoDTO) ([]todo.Todo, error) {
	todos := make([]todo.Todo, 0, len(dtos))
	for i := range dtos {
		t, err := toDomainTodo(&dtos[i])
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, nil
}

func toCreateRequest(dto todo.CreateTodo) createRequestDTO {
	return createRequestDTO{Text: dto.Text()}
}

func toUpdateRequest(dto todo.UpdateTodo) updateRequestDTO {
	v := dto.Values()

	req := updateRequestDTO{Text: v.Text}
	if v.SetCompletedAt {
		if v.CompletedAt == nil {
			req.CompletedAt = json.RawMessage("null")
		} else {
			req.CompletedAt, _ = json.Marshal(v.CompletedAt.UTC().Format(wireTimeLayout))
		}
	}
	return req
}
