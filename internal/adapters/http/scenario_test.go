package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/memory"
	adapthttp "github.com/jsamuelsen11/todo-api/internal/adapters/http"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-api/internal/app"
	"github.com/jsamuelsen11/todo-api/internal/platform/config"
	"github.com/jsamuelsen11/todo-api/internal/platform/health"
)

// todoJSON mirrors the wire shape of a todo. CompletedAt stays a pointer so
// null and a missing key can both be asserted.
type todoJSON struct {
	ID          int64   `json:"id"`
	Text        string  `json:"text"`
	CompletedAt *string `json:"completedAt"`
}

// newStack wires the real router, middleware chain, repository and
// breaker-guarded in-memory datasource.
func newStack(t *testing.T) http.Handler {
	t.Helper()
	logger := discardLogger()

	store := memory.New()
	guarded := datasource.NewGuarded(store, "memory", &config.CircuitBreakerConfig{
		MaxFailures:   5,
		Timeout:       time.Second,
		HalfOpenLimit: 1,
	}, nil, logger)

	registry := health.New()
	registry.Register(store)
	registry.Register(guarded)

	return adapthttp.NewRouter(
		handlers.NewTodoHandler(app.NewTodoRepository(guarded, logger)),
		handlers.NewHealthHandler(registry),
		nil,
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.OpenTelemetry(nil),
		middleware.Logging(logger),
		middleware.Timeout(5*time.Second),
	)
}

func send(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

func readTodo(t *testing.T, rec *httptest.ResponseRecorder) todoJSON {
	t.Helper()
	var got todoJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode todo: %v (body: %s)", err, rec.Body.String())
	}
	return got
}

func readError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, rec.Body.String())
	}
	return got["error"]
}

func createTodo(t *testing.T, h http.Handler, text string) todoJSON {
	t.Helper()
	rec := send(t, h, http.MethodPost, "/api/todos", map[string]string{"text": text})
	expectStatus(t, rec, http.StatusCreated)
	return readTodo(t, rec)
}

func TestScenario_ListInCreationOrder(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	createTodo(t, h, "Hola Mundo 1")
	createTodo(t, h, "Hola Mundo 2")

	rec := send(t, h, http.MethodGet, "/api/todos", nil)
	expectStatus(t, rec, http.StatusOK)

	var got []todoJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, want := range []string{"Hola Mundo 1", "Hola Mundo 2"} {
		if got[i].Text != want {
			t.Errorf("[%d].text = %q, want %q", i, got[i].Text, want)
		}
		if got[i].CompletedAt != nil {
			t.Errorf("[%d].completedAt = %q, want null", i, *got[i].CompletedAt)
		}
	}
}

func TestScenario_EmptyListIsArray(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	rec := send(t, h, http.MethodGet, "/api/todos", nil)
	expectStatus(t, rec, http.StatusOK)

	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestScenario_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{name: "empty object", body: map[string]any{}, wantMsg: "Text property is required"},
		{name: "empty text", body: map[string]string{"text": ""}, wantMsg: "Text property is required"},
		{name: "blank text", body: map[string]string{"text": "   "}, wantMsg: "Text property is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newStack(t)

			rec := send(t, h, http.MethodPost, "/api/todos", tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			if msg := readError(t, rec); msg != tt.wantMsg {
				t.Errorf("error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestScenario_CreateReturnsPendingRecord(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	rec := send(t, h, http.MethodPost, "/api/todos", map[string]string{"text": "X"})
	expectStatus(t, rec, http.StatusCreated)

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["id"].(float64); !ok {
		t.Errorf("id = %v, want a number", raw["id"])
	}
	if raw["text"] != "X" {
		t.Errorf("text = %v, want %q", raw["text"], "X")
	}
	v, ok := raw["completedAt"]
	if !ok || v != nil {
		t.Errorf("completedAt = %v (present %v), want explicit null", v, ok)
	}
}

func TestScenario_RoundTrip(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	created := createTodo(t, h, "  Buy milk  ")

	rec := send(t, h, http.MethodGet, fmt.Sprintf("/api/todos/%d", created.ID), nil)
	expectStatus(t, rec, http.StatusOK)
	got := readTodo(t, rec)

	if got.ID != created.ID || got.Text != created.Text {
		t.Errorf("GET = %+v, want %+v", got, created)
	}
	if got.CompletedAt != nil || created.CompletedAt != nil {
		t.Errorf("completedAt should be null on both create and fetch")
	}
}

func TestScenario_UpdateIsPartial(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	created := createTodo(t, h, "Hola Mundo 1")
	path := fmt.Sprintf("/api/todos/%d", created.ID)

	rec := send(t, h, http.MethodPut, path, map[string]string{"completedAt": "2024-06-15"})
	expectStatus(t, rec, http.StatusOK)
	got := readTodo(t, rec)

	if got.Text != "Hola Mundo 1" {
		t.Errorf("text = %q, want unchanged %q", got.Text, "Hola Mundo 1")
	}
	if got.CompletedAt == nil || *got.CompletedAt != "2024-06-15T00:00:00.000Z" {
		t.Errorf("completedAt = %v, want %q", got.CompletedAt, "2024-06-15T00:00:00.000Z")
	}

	// Updating only the text keeps the completion time.
	rec = send(t, h, http.MethodPut, path, map[string]string{"text": "Hola Mundo UPDATED"})
	expectStatus(t, rec, http.StatusOK)
	got = readTodo(t, rec)

	if got.Text != "Hola Mundo UPDATED" {
		t.Errorf("text = %q, want %q", got.Text, "Hola Mundo UPDATED")
	}
	if got.CompletedAt == nil || *got.CompletedAt != "2024-06-15T00:00:00.000Z" {
		t.Errorf("completedAt = %v, want it preserved", got.CompletedAt)
	}

	// The literal "null" clears completion.
	rec = send(t, h, http.MethodPut, path, map[string]string{"completedAt": "null"})
	expectStatus(t, rec, http.StatusOK)
	if got = readTodo(t, rec); got.CompletedAt != nil {
		t.Errorf("completedAt = %q, want null after clearing", *got.CompletedAt)
	}

	// The change is visible on a later read.
	rec = send(t, h, http.MethodGet, path, nil)
	expectStatus(t, rec, http.StatusOK)
	if got = readTodo(t, rec); got.Text != "Hola Mundo UPDATED" || got.CompletedAt != nil {
		t.Errorf("GET after updates = %+v", got)
	}
}

func TestScenario_UpdateValidation(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	created := createTodo(t, h, "x")
	path := fmt.Sprintf("/api/todos/%d", created.ID)

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{name: "bad date", body: map[string]string{"completedAt": "not-a-date"}, wantMsg: "CompletedAt is not a valid date"},
		{name: "empty text", body: map[string]string{"text": ""}, wantMsg: "Text property must not be empty"},
		{name: "zero time", body: map[string]string{"completedAt": "0001-01-01T00:00:00Z"}, wantMsg: "CompletedAt is not a valid date"},
		{name: "huge epoch", body: map[string]any{"completedAt": 1e300}, wantMsg: "CompletedAt is not a valid date"},
		{name: "huge negative epoch", body: map[string]any{"completedAt": -1e20}, wantMsg: "CompletedAt is not a valid date"},
		{name: "epoch past clock limit", body: map[string]any{"completedAt": 8.64e15 + 1}, wantMsg: "CompletedAt is not a valid date"},
	}

	for _, tt := range tests {
		rec := send(t, h, http.MethodPut, path, tt.body)
		expectStatus(t, rec, http.StatusBadRequest)
		if msg := readError(t, rec); msg != tt.wantMsg {
			t.Errorf("%s: error = %q, want %q", tt.name, msg, tt.wantMsg)
		}
	}

	rec := send(t, h, http.MethodGet, path, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := readTodo(t, rec); got != created {
		t.Errorf("GET after rejected updates = %+v, want %+v", got, created)
	}
}

func TestScenario_DeleteTwice(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	created := createTodo(t, h, "gone soon")
	path := fmt.Sprintf("/api/todos/%d", created.ID)

	rec := send(t, h, http.MethodDelete, path, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := readTodo(t, rec); got != created {
		t.Errorf("DELETE = %+v, want %+v", got, created)
	}

	rec = send(t, h, http.MethodDelete, path, nil)
	expectStatus(t, rec, http.StatusNotFound)
	want := fmt.Sprintf("TODO with id %d not found", created.ID)
	if msg := readError(t, rec); msg != want {
		t.Errorf("error = %q, want %q", msg, want)
	}
}

func TestScenario_UnknownIDReturnsNotFound(t *testing.T) {
	t.Parallel()

	update := map[string]string{"text": "Hola Mundo UPDATED", "completedAt": "2024-06-12"}
	tests := []struct {
		method string
		id     string
		body   any
	}{
		{method: http.MethodGet, id: "999"},
		{method: http.MethodPut, id: "999", body: update},
		{method: http.MethodDelete, id: "999"},
		{method: http.MethodGet, id: "0"},
		{method: http.MethodDelete, id: "0"},
		{method: http.MethodGet, id: "-3"},
		{method: http.MethodDelete, id: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.id, func(t *testing.T) {
			t.Parallel()
			h := newStack(t)
			createTodo(t, h, "present")

			rec := send(t, h, tt.method, "/api/todos/"+tt.id, tt.body)
			expectStatus(t, rec, http.StatusNotFound)
			want := "TODO with id " + tt.id + " not found"
			if msg := readError(t, rec); msg != want {
				t.Errorf("error = %q, want %q", msg, want)
			}
		})
	}
}

func TestScenario_UpdateNonPositiveIDReturnsBadRequest(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	for _, id := range []string{"0", "-3"} {
		rec := send(t, h, http.MethodPut, "/api/todos/"+id, map[string]string{"text": "x"})
		expectStatus(t, rec, http.StatusBadRequest)
		if msg := readError(t, rec); msg != "ID argument is not a number" {
			t.Errorf("PUT %s: error = %q, want %q", id, msg, "ID argument is not a number")
		}
	}
}

func TestScenario_NonNumericIDReturnsBadRequest(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()
			h := newStack(t)

			var body any
			if method == http.MethodPut {
				body = map[string]string{"text": "x"}
			}
			rec := send(t, h, method, "/api/todos/abc", body)
			expectStatus(t, rec, http.StatusBadRequest)
			if msg := readError(t, rec); msg != "ID argument is not a number" {
				t.Errorf("error = %q, want %q", msg, "ID argument is not a number")
			}
		})
	}
}

func TestScenario_ResponsesCarryRequestID(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	rec := send(t, h, http.MethodGet, "/api/todos", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing from response")
	}
}

func TestScenario_ReadinessReportsStore(t *testing.T) {
	t.Parallel()
	h := newStack(t)

	rec := send(t, h, http.MethodGet, "/health/ready", nil)
	expectStatus(t, rec, http.StatusOK)

	var got struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "ready" {
		t.Errorf("status = %q, want %q", got.Status, "ready")
	}
	for _, name := range []string{"memory", "store-breaker"} {
		if got.Checks[name] != "ok" {
			t.Errorf("checks[%q] = %q, want %q", name, got.Checks[name], "ok")
		}
	}
}
