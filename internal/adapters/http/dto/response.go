// Package dto provides the HTTP request/response data transfer objects and
// the error envelope for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

// TimestampLayout renders completion times as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TodoResponse is a single todo in HTTP responses. CompletedAt is null for
// pending items.
type TodoResponse struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	CompletedAt *string `json:"completedAt"`
}

// ToTodoResponse converts a domain Todo to its wire form.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	resp := TodoResponse{
		ID:   t.ID,
		Text: t.Text,
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.UTC().Format(TimestampLayout)
		resp.CompletedAt = &s
	}
	return resp
}

// ToTodoListResponse converts todos to their wire form. The result is never
// nil so an empty list encodes as [].
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}
