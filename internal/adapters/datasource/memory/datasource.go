// Package memory implements an in-process todo datasource backed by a slice.
// It was the store used for early iterations and remains the default for
// tests and the local profile.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoDatasource = (*Datasource)(nil)

// Datasource keeps todos in insertion order. All access goes through mu;
// returned todos are copies, so callers never alias stored state.
type Datasource struct {
	mu    sync.RWMutex
	todos []todo.Todo
}

// Option configures a Datasource.
type Option func(*Datasource)

// WithTodos seeds the datasource with the given todos, kept in order.
func WithTodos(todos ...todo.Todo) Option {
	return func(d *Datasource) {
		for _, t := range todos {
			d.todos = append(d.todos, clone(t))
		}
	}
}

// New creates an empty (or seeded) in-memory datasource.
func New(opts ...Option) *Datasource {
	d := &Datasource{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetAll returns a snapshot of every todo in insertion order.
func (d *Datasource) GetAll(_ context.Context) ([]todo.Todo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]todo.Todo, len(d.todos))
	for i, t := range d.todos {
		out[i] = clone(t)
	}
	return out, nil
}

// FindByID scans for the todo with the given id.
func (d *Datasource) FindByID(_ context.Context, id int64) (*todo.Todo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.indexOf(id)
	if i < 0 {
		return nil, &domain.NotFoundError{ID: id}
	}
	t := clone(d.todos[i])
	return &t, nil
}

// Create appends a new pending todo. The id is count+1, advanced past any id
// still in use so that a delete followed by a create never collides.
func (d *Datasource) Create(_ context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := int64(len(d.todos)) + 1
	for d.indexOf(id) >= 0 {
		id++
	}

	created, err := todo.FromRecord(todo.Record{ID: id, Text: dto.Text()})
	if err != nil {
		return nil, err
	}
	d.todos = append(d.todos, *created)

	out := clone(*created)
	return &out, nil
}

// UpdateByID overwrites only the supplied fields.
func (d *Datasource) UpdateByID(_ context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(dto.ID())
	if i < 0 {
		return nil, &domain.NotFoundError{ID: dto.ID()}
	}

	d.todos[i] = clone(dto.Values().Apply(d.todos[i]))

	out := clone(d.todos[i])
	return &out, nil
}

// DeleteByID splices the todo out and returns it.
func (d *Datasource) DeleteByID(_ context.Context, id int64) (*todo.Todo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(id)
	if i < 0 {
		return nil, &domain.NotFoundError{ID: id}
	}

	removed := d.todos[i]
	d.todos = slices.Delete(d.todos, i, i+1)
	return &removed, nil
}

// Name identifies the store in health reports.
func (d *Datasource) Name() string {
	return "memory"
}

// HealthCheck always succeeds; the store lives in process.
func (d *Datasource) HealthCheck(_ context.Context) error {
	return nil
}

// indexOf must be called with mu held.
func (d *Datasource) indexOf(id int64) int {
	return slices.IndexFunc(d.todos, func(t todo.Todo) bool { return t.ID == id })
}

// clone copies t including the CompletedAt pointee.
func clone(t todo.Todo) todo.Todo {
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		t.CompletedAt = &ts
	}
	return t
}
