// Package postgres implements the todo datasource on PostgreSQL through a
// pgx connection pool.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoDatasource = (*Datasource)(nil)

// schema creates the single todos table when it is missing. Applied only when
// store.postgres.ensure_schema is set; versioned migrations live outside this
// service.
//
//go:embed schema.sql
var schema string

const (
	selectAll = `
		SELECT id, text, "completedAt"
		FROM todos
		ORDER BY id`

	selectByID = `
		SELECT id, text, "completedAt"
		FROM todos
		WHERE id = $1`

	insertTodo = `
		INSERT INTO todos (text)
		VALUES ($1)
		RETURNING id, text, "completedAt"`

	// updateByID applies only supplied fields: a NULL $2 keeps text, and $3
	// decides whether $4 replaces completedAt (NULL $4 un-completes).
	updateByID = `
		UPDATE todos
		SET text = COALESCE($2::text, text),
			"completedAt" = CASE WHEN $3::boolean THEN $4::timestamptz ELSE "completedAt" END
		WHERE id = $1
		RETURNING id, text, "completedAt"`

	deleteByID = `
		DELETE FROM todos
		WHERE id = $1
		RETURNING id, text, "completedAt"`
)

// Config holds pool settings.
type Config struct {
	DSN          string
	MaxConns     int32
	EnsureSchema bool
}

// Open creates a pgx pool, verifies connectivity and optionally applies the
// table schema.
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if cfg.EnsureSchema {
		if err := EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return pool, nil
}

// EnsureSchema creates the todos table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying todos schema: %w", err)
	}
	return nil
}

// Datasource reads and writes the todos table. Safe for concurrent use; the
// pool is shared process-wide.
type Datasource struct {
	pool *pgxpool.Pool
}

// New creates a Datasource over an open pool. The caller owns the pool.
func New(pool *pgxpool.Pool) *Datasource {
	return &Datasource{pool: pool}
}

// GetAll returns every todo ordered by id.
func (d *Datasource) GetAll(ctx context.Context) ([]todo.Todo, error) {
	rows, err := d.pool.Query(ctx, selectAll)
	if err != nil {
		return nil, storageError("list todos", err)
	}
	defer rows.Close()

	records := make([]todo.Record, 0)
	for rows.Next() {
		var r todo.Record
		if err := rows.Scan(&r.ID, &r.Text, &r.CompletedAt); err != nil {
			return nil, storageError("scan todo", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list todos", err)
	}

	return todo.FromStoredList("list todos", records)
}

// FindByID selects a todo by primary key.
func (d *Datasource) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return d.queryOne(ctx, "find todo", id, selectByID, id)
}

// Create inserts a todo and lets the sequence assign its id.
func (d *Datasource) Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	return d.queryOne(ctx, "create todo", 0, insertTodo, dto.Text())
}

// UpdateByID updates the supplied fields in a single statement. A row that
// vanished after the caller's existence check reports not found.
func (d *Datasource) UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	v := dto.Values()

	var completedAt *time.Time
	if v.SetCompletedAt {
		completedAt = v.CompletedAt
	}

	return d.queryOne(ctx, "update todo", dto.ID(), updateByID,
		dto.ID(), v.Text, v.SetCompletedAt, completedAt)
}

// DeleteByID removes a todo and returns the deleted row.
func (d *Datasource) DeleteByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return d.queryOne(ctx, "delete todo", id, deleteByID, id)
}

// Name identifies the store in health reports.
func (d *Datasource) Name() string {
	return "postgres"
}

// HealthCheck pings the pool.
func (d *Datasource) HealthCheck(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// queryOne runs a statement returning a single todo row. id is reported in
// the not-found error when no row comes back.
func (d *Datasource) queryOne(ctx context.Context, op string, id int64, query string, args ...any) (*todo.Todo, error) {
	var r todo.Record
	err := d.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.Text, &r.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, storageError(op, err)
	}
	return todo.FromStored(op, r)
}

// storageError wraps err as domain.ErrStorage, keeping the SQLSTATE when
// PostgreSQL reported one.
func storageError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		op = fmt.Sprintf("%s (sqlstate %s)", op, pgErr.Code)
	}
	return domain.StorageFailure(op, err)
}
