package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/datasourcetest"
	"github.com/jsamuelsen11/todo-api/internal/adapters/datasource/memory"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

func TestDatasource_Contract(t *testing.T) {
	t.Parallel()

	datasourcetest.Run(t, func(_ *testing.T) ports.TodoDatasource {
		return memory.New()
	})
}

func TestDatasource_CountPlusOneIDs(t *testing.T) {
	t.Parallel()

	ds := memory.New()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		created, err := ds.Create(ctx, datasourcetest.MustCreate(t, "item"))
		require.NoError(t, err)
		assert.Equal(t, want, created.ID)
	}
}

func TestDatasource_Seeded(t *testing.T) {
	t.Parallel()

	done := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ds := memory.New(memory.WithTodos(
		todo.Todo{ID: 1, Text: "Buy milk", CompletedAt: &done},
		todo.Todo{ID: 2, Text: "Buy bread"},
	))

	all, err := ds.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsCompleted())
	assert.False(t, all[1].IsCompleted())

	created, err := ds.Create(context.Background(), datasourcetest.MustCreate(t, "Buy butter"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
}

func TestDatasource_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ds := memory.New()
	ctx := context.Background()

	created, err := ds.Create(ctx, datasourcetest.MustCreate(t, "original"))
	require.NoError(t, err)
	created.Text = "mutated by caller"

	found, err := ds.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", found.Text)
}

func TestDatasource_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	ds := memory.New()
	ctx := context.Background()
	dto := datasourcetest.MustCreate(t, "parallel")

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ds.Create(ctx, dto)
		}()
	}
	wg.Wait()

	all, err := ds.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	seen := make(map[int64]bool, n)
	for _, td := range all {
		assert.False(t, seen[td.ID], "duplicate id %d", td.ID)
		seen[td.ID] = true
	}
}

func TestDatasource_HealthCheck(t *testing.T) {
	t.Parallel()

	ds := memory.New()
	assert.Equal(t, "memory", ds.Name())
	assert.NoError(t, ds.HealthCheck(context.Background()))
}
