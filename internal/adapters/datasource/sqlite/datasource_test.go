package sqlite_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/datasourcetest"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/sqlite"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "todos.db")
	db, err := sqlite.Open(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	return db
}

func newDatasource(t *testing.T) *sqlite.Datasource {
	t.Helper()
	return sqlite.New(openDB(t))
}

func TestDatasource_Contract(t *testing.T) {
	t.Parallel()

	datasourcetest.Run(t, func(t *testing.T) ports.TodoDatasource {
		return newDatasource(t)
	})
}

func TestDatasource_StoredInvariants(t *testing.T) {
	t.Parallel()

	datasourcetest.RunStoredInvariants(t, func(t *testing.T, text string) (ports.TodoDatasource, int64) {
		db := openDB(t)
		require.NoError(t, db.Exec("INSERT INTO todos (id, text) VALUES (?, ?)", 1, text).Error)
		return sqlite.New(db), 1
	})
}

func TestDatasource_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.db")
	ctx := context.Background()

	db, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	created, err := sqlite.New(db).Create(ctx, datasourcetest.MustCreate(t, "survives restart"))
	require.NoError(t, err)
	require.NoError(t, sqlite.Close(db))

	db, err = sqlite.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	found, err := sqlite.New(db).FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "survives restart", found.Text)
}

func TestDatasource_HealthCheck(t *testing.T) {
	t.Parallel()

	ds := newDatasource(t)
	assert.Equal(t, "sqlite", ds.Name())
	assert.NoError(t, ds.HealthCheck(context.Background()))
}

func TestOpen_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := sqlite.Open("", nil)
	require.Error(t, err)
}
