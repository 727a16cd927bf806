// Package sqlite implements the todo datasource on an embedded SQLite file
// through GORM. It backs the local and dev profiles when a persistent store
// is wanted without running PostgreSQL.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoDatasource = (*Datasource)(nil)

const slowQueryThreshold = 200 * time.Millisecond

// todoRow is the GORM model for the todos table.
type todoRow struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Text        string     `gorm:"not null"`
	CompletedAt *time.Time `gorm:"column:completedAt"`
}

// TableName pins the table name shared with the PostgreSQL schema.
func (todoRow) TableName() string {
	return "todos"
}

func (r todoRow) record() todo.Record {
	return todo.Record{ID: r.ID, Text: r.Text, CompletedAt: r.CompletedAt}
}

// Open opens (creating if needed) the SQLite database at path and makes sure
// the todos table exists.
func Open(path string, log *slog.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path must not be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(slogWriter{log: log}, logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolving sqlite handle: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&todoRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("creating todos table: %w", err)
	}

	return db, nil
}

// Close releases the underlying database handle.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Datasource reads and writes the todos table through GORM.
type Datasource struct {
	db *gorm.DB
}

// New creates a Datasource over an open GORM handle. The caller owns db.
func New(db *gorm.DB) *Datasource {
	return &Datasource{db: db}
}

// GetAll returns every todo ordered by id.
func (d *Datasource) GetAll(ctx context.Context) ([]todo.Todo, error) {
	var rows []todoRow
	if err := d.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, domain.StorageFailure("list todos", err)
	}

	records := make([]todo.Record, len(rows))
	for i, r := range rows {
		records[i] = r.record()
	}
	return todo.FromStoredList("list todos", records)
}

// FindByID selects a todo by primary key.
func (d *Datasource) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	row, err := findRow(d.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return todo.FromStored("find todo", row.record())
}

// Create inserts a todo and lets SQLite assign its id.
func (d *Datasource) Create(ctx context.Context, dto todo.CreateTodo) (*todo.Todo, error) {
	row := todoRow{Text: dto.Text()}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, domain.StorageFailure("create todo", err)
	}
	return todo.FromStored("create todo", row.record())
}

// UpdateByID updates only the supplied columns and re-reads the row, all in
// one transaction.
func (d *Datasource) UpdateByID(ctx context.Context, dto todo.UpdateTodo) (*todo.Todo, error) {
	v := dto.Values()

	changes := make(map[string]any, 2)
	if v.Text != nil {
		changes["text"] = *v.Text
	}
	if v.SetCompletedAt {
		changes["completedAt"] = v.CompletedAt
	}

	var updated todoRow
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findRow(tx, dto.ID())
		if err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&row).Updates(changes).Error; err != nil {
				return domain.StorageFailure("update todo", err)
			}
		}
		updated, err = findRow(tx, dto.ID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return todo.FromStored("update todo", updated.record())
}

// DeleteByID removes a todo and returns the deleted row.
func (d *Datasource) DeleteByID(ctx context.Context, id int64) (*todo.Todo, error) {
	var deleted todoRow
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findRow(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return domain.StorageFailure("delete todo", err)
		}
		deleted = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todo.FromStored("delete todo", deleted.record())
}

// Name identifies the store in health reports.
func (d *Datasource) Name() string {
	return "sqlite"
}

// HealthCheck pings the database handle.
func (d *Datasource) HealthCheck(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func findRow(db *gorm.DB, id int64) (todoRow, error) {
	var row todoRow
	err := db.First(&row, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return todoRow{}, &domain.NotFoundError{ID: id}
	case err != nil:
		return todoRow{}, domain.StorageFailure("find todo", err)
	}
	return row, nil
}

// ensureDir creates the parent directory of a file-backed database.
func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating sqlite dir %q: %w", dir, err)
	}
	return nil
}

// slogWriter routes GORM's logger output to slog.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	if w.log == nil {
		return
	}
	w.log.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
