// Package datasourcetest provides a behavioural test suite that every
// ports.TodoDatasource implementation must pass.
package datasourcetest

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-api/internal/domain"
	"github.com/jsamuelsen11/todo-api/internal/domain/todo"
	"github.com/jsamuelsen11/todo-api/internal/ports"
)

// Factory returns a fresh, empty datasource for a single subtest.
type Factory func(t *testing.T) ports.TodoDatasource

// Run executes the contract suite. Subtests do not run in parallel so that
// factories may share one underlying database.
func Run(t *testing.T, newDatasource Factory) {
	t.Helper()

	t.Run("GetAll empty", func(t *testing.T) {
		ds := newDatasource(t)

		got, err := ds.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Create assigns id and starts pending", func(t *testing.T) {
		ds := newDatasource(t)

		created, err := ds.Create(context.Background(), MustCreate(t, "Hola Mundo 1"))
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Hola Mundo 1", created.Text)
		assert.Nil(t, created.CompletedAt)
		assert.False(t, created.IsCompleted())
	})

	t.Run("GetAll keeps creation order", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		first, err := ds.Create(ctx, MustCreate(t, "Hola Mundo 1"))
		require.NoError(t, err)
		second, err := ds.Create(ctx, MustCreate(t, "Hola Mundo 2"))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		all, err := ds.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Hola Mundo 1", all[0].Text)
		assert.Equal(t, "Hola Mundo 2", all[1].Text)
		assert.Nil(t, all[0].CompletedAt)
		assert.Nil(t, all[1].CompletedAt)
	})

	t.Run("FindByID round trip", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		created, err := ds.Create(ctx, MustCreate(t, "Buy milk"))
		require.NoError(t, err)

		found, err := ds.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		ds := newDatasource(t)

		_, err := ds.FindByID(context.Background(), 999)
		RequireNotFound(t, err, 999)
	})

	t.Run("UpdateByID partial completedAt", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		created, err := ds.Create(ctx, MustCreate(t, "Buy bread"))
		require.NoError(t, err)

		updated, err := ds.UpdateByID(ctx, MustUpdate(t, created.ID, nil, `"2024-06-15"`))
		require.NoError(t, err)
		assert.Equal(t, "Buy bread", updated.Text)
		require.NotNil(t, updated.CompletedAt)
		assert.True(t, updated.CompletedAt.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))

		found, err := ds.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Text, found.Text)
		require.NotNil(t, found.CompletedAt)
		assert.True(t, found.CompletedAt.Equal(*updated.CompletedAt))
	})

	t.Run("UpdateByID text keeps completedAt", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		created, err := ds.Create(ctx, MustCreate(t, "Buy butter"))
		require.NoError(t, err)
		_, err = ds.UpdateByID(ctx, MustUpdate(t, created.ID, nil, `"2024-06-15T10:00:00Z"`))
		require.NoError(t, err)

		text := "Buy salted butter"
		updated, err := ds.UpdateByID(ctx, MustUpdate(t, created.ID, &text, ""))
		require.NoError(t, err)
		assert.Equal(t, text, updated.Text)
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("UpdateByID clears completedAt", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		created, err := ds.Create(ctx, MustCreate(t, "Walk dog"))
		require.NoError(t, err)
		_, err = ds.UpdateByID(ctx, MustUpdate(t, created.ID, nil, `"2024-06-15"`))
		require.NoError(t, err)

		updated, err := ds.UpdateByID(ctx, MustUpdate(t, created.ID, nil, `"null"`))
		require.NoError(t, err)
		assert.Nil(t, updated.CompletedAt)
		assert.Equal(t, "Walk dog", updated.Text)
	})

	t.Run("UpdateByID missing", func(t *testing.T) {
		ds := newDatasource(t)

		_, err := ds.UpdateByID(context.Background(), MustUpdate(t, 999, nil, `"2024-06-15"`))
		RequireNotFound(t, err, 999)
	})

	t.Run("DeleteByID returns removed record once", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		created, err := ds.Create(ctx, MustCreate(t, "Temporary"))
		require.NoError(t, err)

		deleted, err := ds.DeleteByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		_, err = ds.DeleteByID(ctx, created.ID)
		RequireNotFound(t, err, created.ID)

		_, err = ds.FindByID(ctx, created.ID)
		RequireNotFound(t, err, created.ID)
	})

	t.Run("Create after delete never reuses a live id", func(t *testing.T) {
		ds := newDatasource(t)
		ctx := context.Background()

		first, err := ds.Create(ctx, MustCreate(t, "one"))
		require.NoError(t, err)
		second, err := ds.Create(ctx, MustCreate(t, "two"))
		require.NoError(t, err)
		_, err = ds.DeleteByID(ctx, first.ID)
		require.NoError(t, err)

		third, err := ds.Create(ctx, MustCreate(t, "three"))
		require.NoError(t, err)
		assert.NotEqual(t, second.ID, third.ID)
	})
}

// SeedFactory returns a datasource whose store already holds one row with
// the given text, written straight to the store past entity validation, and
// that row's id.
type SeedFactory func(t *testing.T, text string) (ports.TodoDatasource, int64)

// RunStoredInvariants checks that a stored row breaking an entity invariant
// is reported as a storage fault by every read path, never as a client
// validation error.
func RunStoredInvariants(t *testing.T, seed SeedFactory) {
	t.Helper()

	t.Run("FindByID blank text", func(t *testing.T) {
		ds, id := seed(t, "   ")

		_, err := ds.FindByID(context.Background(), id)
		RequireStorageFault(t, err)
	})

	t.Run("GetAll blank text", func(t *testing.T) {
		ds, _ := seed(t, "")

		got, err := ds.GetAll(context.Background())
		RequireStorageFault(t, err)
		assert.Nil(t, got)
	})

	t.Run("UpdateByID leaving text blank", func(t *testing.T) {
		ds, id := seed(t, " ")

		_, err := ds.UpdateByID(context.Background(), MustUpdate(t, id, nil, `"2024-06-15"`))
		RequireStorageFault(t, err)
	})
}

// MustCreate builds a validated create DTO or fails the test.
func MustCreate(t *testing.T, text string) todo.CreateTodo {
	t.Helper()
	dto, err := todo.NewCreateTodo(todo.CreatePayload{Text: text}).Get()
	require.NoError(t, err)
	return dto
}

// MustUpdate builds a validated update DTO or fails the test. An empty
// completedAt means the field is omitted.
func MustUpdate(t *testing.T, id int64, text *string, completedAt string) todo.UpdateTodo {
	t.Helper()

	payload := todo.UpdatePayload{ID: strconv.FormatInt(id, 10), Text: text}
	if completedAt != "" {
		payload.CompletedAt = json.RawMessage(completedAt)
	}

	dto, err := todo.NewUpdateTodo(payload).Get()
	require.NoError(t, err)
	return dto
}

// RequireNotFound asserts err is a *domain.NotFoundError for id.
func RequireNotFound(t *testing.T, err error, id int64) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf), "want *domain.NotFoundError, got %T", err)
	assert.Equal(t, id, nf.ID)
}

// RequireStorageFault asserts err matches domain.ErrStorage and not
// domain.ErrValidation.
func RequireStorageFault(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}
