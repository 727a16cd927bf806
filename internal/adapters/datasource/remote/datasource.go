// Package remote implements a todo datasource that proxies another instance
// of this API over HTTP. Requests go through httpclient for rate limiting,
// tracing and retries of reads; downstream responses are translated back
// into domain results so callers cannot tell it from a local store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/platform/httpclient"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

const todosPath = "/api/todos"

// Compile-time interface check.
var _ ports.TodoDatasource = (*Datasource)(nil)

// Datasource is the outbound adapter for a downstream todo API.
type Datasource struct {
	client     *httpclient.Client
	healthPath string
	logger     *slog.Logger
}

// New creates a Datasource sending requests through client. healthPath is
// probed by HealthCheck (e.g. "/health/live").
func New(client *httpclient.Client, healthPath string, logger *slog.Logger) *Datasource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Datasource{client: client, healthPath: healthPath, logger: logger}
}

// GetAll fetches GET /api/todos.
func (d *Datasource) GetAll(ctx context.Context) ([]todo.Todo, error) {
	const op = "list todos"

	var dtos []todoDTO
	if err := d.do(ctx, op, 0, http.MethodGet, todosPath, http.StatusOK, nil, &dtos); err != nil {
		return nil, err
	}

	todos, err := toDomainTodoList(dtos)
	if err != nil {
		return nil, todo.InvalidStored(op, err)
	}
	return todos, nil
}

// FindByID fetches GET /api/todos/{id}.
func (d *Datasource) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return d.single(ctx, "find todo", id, http.MethodGet, http.StatusOK, nil)
}

// Create sends POST /api/todos.
func (d *Datasource) Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	const op = "create todo"

	var out todoDTO
	if err := d.do(ctx, op, 0, http.MethodPost, todosPath, http.StatusCreated, toCreateRequest(dto), &out); err != nil {
		return nil, err
	}

	created, err := toDomainTodo(&out)
	if err != nil {
		return nil, todo.InvalidStored(op, err)
	}
	return created, nil
}

// UpdateByID sends PUT /api/todos/{id} with only the supplied fields.
func (d *Datasource) UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	return d.single(ctx, "update todo", dto.ID(), http.MethodPut, http.StatusOK, toUpdateRequest(dto))
}

// DeleteByID sends DELETE /api/todos/{id} and returns the removed todo.
func (d *Datasource) DeleteByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return d.single(ctx, "delete todo", id, http.MethodDelete, http.StatusOK, nil)
}

// Name identifies the store in health reports.
func (d *Datasource) Name() string {
	return "remote"
}

// HealthCheck probes the downstream liveness endpoint.
func (d *Datasource) HealthCheck(ctx context.Context) error {
	req, err := d.client.NewRequest(ctx, http.MethodGet, d.healthPath, nil)
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	resp, err := d.client.Do(ctx, req)
	if resp != nil {
		defer d.closeBody(ctx, resp)
	}
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote: health probe returned %d", resp.StatusCode)
	}
	return nil
}

// single runs a call addressed to /api/todos/{id} that answers with one todo.
func (d *Datasource) single(ctx context.Context, op string, id int64, method string, wantStatus int, body any) (*todo.Todo, error) {
	path := todosPath + "/" + strconv.FormatInt(id, 10)

	var out todoDTO
	if err := d.do(ctx, op, id, method, path, wantStatus, body, &out); err != nil {
		return nil, err
	}

	t, err := toDomainTodo(&out)
	if err != nil {
		return nil, todo.InvalidStored(op, err)
	}
	return t, nil
}

// do executes one request, validates the status code and decodes the JSON
// response into respBody. It ensures resp.Body is always closed.
func (d *Datasource) do(
	ctx context.Context,
	op string,
	id int64,
	method, path string,
	wantStatus int,
	reqBody, respBody any,
) error {
	req, err := d.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return domain.StorageFailure(op, err)
	}

	resp, err := d.client.Do(ctx, req)
	if resp != nil {
		defer d.closeBody(ctx, resp)
	}
	if err != nil {
		// Do returns both resp and err when retries are exhausted on a
		// retryable status.
		if resp != nil {
			return translateHTTPError(op, id, resp)
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		d.logger.ErrorContext(ctx, "remote request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return domain.StorageFailure(op, err)
	}

	if resp.StatusCode != wantStatus {
		translated := translateHTTPError(op, id, resp)
		if errors.Is(translated, domain.ErrStorage) {
			d.logger.ErrorContext(ctx, "unexpected status from remote store",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
				slog.Int("want_status", wantStatus),
			)
		}
		return translated
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return domain.StorageFailure(op, fmt.Errorf("decoding response: %w", err))
		}
	}
	return nil
}

func (d *Datasource) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := d.client.NewRequest(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// closeBody drains and closes an HTTP response body, logging on failure.
func (d *Datasource) closeBody(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		d.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}
