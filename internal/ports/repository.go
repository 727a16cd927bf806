package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

// TodoRepository is the stable contract the HTTP layer depends on. It mirrors
// TodoDatasource method for method so that handlers never see which store
// backs the service.
type TodoRepository interface {
	// GetAll returns every todo in creation order.
	GetAll(ctx context.Context) ([]todo.Todo, error)

	// FindByID returns a single todo.
	// Returns a *domain.NotFoundError if the todo does not exist.
	FindByID(ctx context.Context, id int64) (*todo.Todo, error)

	// Create persists a new todo and returns it with its store-assigned ID.
	Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error)

	// UpdateByID applies the supplied fields of dto and returns the result.
	// Returns a *domain.NotFoundError if the todo does not exist.
	UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error)

	// DeleteByID hard-deletes a todo and returns the removed record.
	// Returns a *domain.NotFoundError if the todo does not exist.
	DeleteByID(ctx context.Context, id int64) (*todo.Todo, error)
}
