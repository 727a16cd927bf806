package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
)

var june15 = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func groceries() *todo.Todo {
	return &todo.Todo{ID: 1, Text: "Buy groceries"}
}

func groceriesDone() *todo.Todo {
	done := june15
	return &todo.Todo{ID: 1, Text: "Buy groceries", CompletedAt: &done}
}

// call runs handler on a request for target. A non-empty id is installed as
// the chi {id} parameter, the way the router would.
func call(handler http.HandlerFunc, method, target, id, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	assert.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

// assertError checks for the {"error": msg} envelope with status.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()

	assertStatus(t, rec, status)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"error": msg}, decodeJSON[map[string]string](t, rec))
}
