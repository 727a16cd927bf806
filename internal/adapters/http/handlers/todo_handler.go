package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// TodoHandler exposes the todo repository as the /api/todos resource.
type TodoHandler struct {
	repo ports.TodoRepository
}

// NewTodoHandler returns a TodoHandler over repo.
func NewTodoHandler(repo ports.TodoRepository) *TodoHandler {
	return &TodoHandler{repo: repo}
}

// ListTodos handles GET /api/todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.repo.GetAll(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, dto.ToTodoListResponse(todos))
}

// GetTodo handles GET /api/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	found, err := h.repo.FindByID(r.Context(), id)
	reply(w, r, http.StatusOK, found, err)
}

// CreateTodo handles POST /api/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTodoRequest
	if !readJSON(w, r, &req) {
		return
	}

	in, err := todo.NewCreateTodo(req.Payload()).Get()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	created, err := h.repo.Create(r.Context(), in)
	reply(w, r, http.StatusCreated, created, err)
}

// UpdateTodo handles PUT /api/todos/{id}. Fields absent from the body keep
// their stored value.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTodoRequest
	if !readJSON(w, r, &req) {
		return
	}

	in, err := todo.NewUpdateTodo(req.Payload(chi.URLParam(r, "id"))).Get()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !h.exists(w, r, in.ID()) {
		return
	}
	updated, err := h.repo.UpdateByID(r.Context(), in)
	reply(w, r, http.StatusOK, updated, err)
}

// DeleteTodo handles DELETE /api/todos/{id}, answering with the todo as it
// was before removal.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok || !h.exists(w, r, id) {
		return
	}
	deleted, err := h.repo.DeleteByID(r.Context(), id)
	reply(w, r, http.StatusOK, deleted, err)
}

// exists answers 404 (or the lookup failure) unless id is stored. A todo
// removed after this check surfaces as the write's own not-found error.
func (h *TodoHandler) exists(w http.ResponseWriter, r *http.Request, id int64) bool {
	if _, err := h.repo.FindByID(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return 0, false
	}
	return id, true
}

// reply writes t with status, or the error envelope when err is set.
func reply(w http.ResponseWriter, r *http.Request, status int, t *todo.Todo, err error) {
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respond(w, r, status, dto.ToTodoResponse(t))
}
