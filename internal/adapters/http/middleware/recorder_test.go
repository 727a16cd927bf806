package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRecorder_ImplicitOK(t *testing.T) {
	t.Parallel()

	rec := recordResponse(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.False(t, rec.Committed())
}

func TestStatusRecorder_FirstStatusWins(t *testing.T) {
	t.Parallel()

	inner := httptest.NewRecorder()
	rec := recordResponse(inner)

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, rec.Status())
	assert.Equal(t, http.StatusCreated, inner.Code)
	assert.True(t, rec.Committed())
}

func TestStatusRecorder_WriteCommitsAndCounts(t *testing.T) {
	t.Parallel()

	inner := httptest.NewRecorder()
	rec := recordResponse(inner)

	_, err := rec.Write([]byte(`[{"id":1,`))
	require.NoError(t, err)
	_, err = rec.Write([]byte(`"text":"a"}]`))
	require.NoError(t, err)

	assert.True(t, rec.Committed())
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Equal(t, int64(inner.Body.Len()), rec.BytesWritten())
	assert.JSONEq(t, `[{"id":1,"text":"a"}]`, inner.Body.String())
}

func TestRecordResponse_ReusesOuterRecorder(t *testing.T) {
	t.Parallel()

	outer := recordResponse(httptest.NewRecorder())
	assert.Same(t, outer, recordResponse(outer))
}

func TestStatusRecorder_Unwrap(t *testing.T) {
	t.Parallel()

	inner := httptest.NewRecorder()
	assert.Same(t, inner, recordResponse(inner).Unwrap())
}
