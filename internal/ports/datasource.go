package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

// TodoDatasource issues the actual reads and writes against a physical store.
// Implemented by the memory, postgres, sqlite and remote adapters.
//
// Every method that addresses a single row returns a *domain.NotFoundError
// when no row matches. Store failures wrap domain.ErrStorage.
type TodoDatasource interface {
	GetAll(ctx context.Context) ([]todo.Todo, error)
	FindByID(ctx context.Context, id int64) (*todo.Todo, error)
	Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error)
	UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error)
	DeleteByID(ctx context.Context, id int64) (*todo.Todo, error)
}
