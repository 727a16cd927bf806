// Package app provides application services that sit between the HTTP
// adapters and the datasource port.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// Compile-time check that TodoRepository implements ports.TodoRepository.
var _ ports.TodoRepository = (*TodoRepository)(nil)

// TodoRepository implements ports.TodoRepository by delegating every call to
// a TodoDatasource. It adds structured logging but no business logic, so the
// datasource can be swapped without touching the handlers.
type TodoRepository struct {
	datasource ports.TodoDatasource
	logger     *slog.Logger
}

// NewTodoRepository creates a TodoRepository backed by ds. A nil logger
// discards output.
func NewTodoRepository(ds ports.TodoDatasource, logger *slog.Logger) *TodoRepository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoRepository{
		datasource: ds,
		logger:     logger,
	}
}

// GetAll returns every todo in creation order.
func (r *TodoRepository) GetAll(ctx context.Context) ([]todo.Todo, error) {
	r.logger.DebugContext(ctx, "listing todos")

	todos, err := r.datasource.GetAll(ctx)
	if err != nil {
		r.logFailure(ctx, "GetAll", err)
		return nil, err
	}

	return todos, nil
}

// FindByID returns a single todo.
func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	r.logger.DebugContext(ctx, "fetching todo", slog.Int64("id", id))

	t, err := r.datasource.FindByID(ctx, id)
	if err != nil {
		r.logFailure(ctx, "FindByID", err, slog.Int64("id", id))
		return nil, err
	}

	return t, nil
}

// Create persists a validated todo.
func (r *TodoRepository) Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	created, err := r.datasource.Create(ctx, dto)
	if err != nil {
		r.logFailure(ctx, "Create", err)
		return nil, err
	}

	r.logger.InfoContext(ctx, "todo created", slog.Int64("id", created.ID))
	return created, nil
}

// UpdateByID applies a validated partial update.
func (r *TodoRepository) UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	updated, err := r.datasource.UpdateByID(ctx, dto)
	if err != nil {
		r.logFailure(ctx, "UpdateByID", err, slog.Int64("id", dto.ID()))
		return nil, err
	}

	r.logger.InfoContext(ctx, "todo updated",
		slog.Int64("id", updated.ID),
		slog.Bool("completed", updated.IsCompleted()),
	)
	return updated, nil
}

// DeleteByID hard-deletes a todo and returns the removed record.
func (r *TodoRepository) DeleteByID(ctx context.Context, id int64) (*todo.Todo, error) {
	deleted, err := r.datasource.DeleteByID(ctx, id)
	if err != nil {
		r.logFailure(ctx, "DeleteByID", err, slog.Int64("id", id))
		return nil, err
	}

	r.logger.InfoContext(ctx, "todo deleted", slog.Int64("id", id))
	return deleted, nil
}

// logFailure logs missing rows at info and everything else at error.
func (r *TodoRepository) logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("operation", op))
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.Any("error", err))

	if errors.Is(err, domain.ErrNotFound) {
		r.logger.InfoContext(ctx, "todo not found", args...)
		return
	}
	r.logger.ErrorContext(ctx, "todo datasource call failed", args...)
}
