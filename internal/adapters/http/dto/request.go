package dto

import (
	"encoding/json"

	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

// CreateTodoRequest is the JSON body for POST /api/todos.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// Payload converts the request into the domain create payload.
func (r *CreateTodoRequest) Payload() todo.CreatePayload {
	return todo.CreatePayload{Text: r.Text}
}

// UpdateTodoRequest is the JSON body for PUT /api/todos/{id}. Text is nil when
// omitted. CompletedAt keeps the raw value so that an explicit null, a date
// string and an epoch number can be told apart.
type UpdateTodoRequest struct {
	Text        *string         `json:"text"`
	CompletedAt json.RawMessage `json:"completedAt"`
}

// Payload converts the request and the raw path id into the domain update
// payload.
func (r *UpdateTodoRequest) Payload(id string) todo.UpdatePayload {
	return todo.UpdatePayload{
		ID:          id,
		Text:        r.Text,
		CompletedAt: r.CompletedAt,
	}
}
