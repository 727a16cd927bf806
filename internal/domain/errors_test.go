package domain_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jsamuelsen11/todo-api/internal/domain"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := error(domain.NewValidationError("text", "Text property is required"))

	if err.Error() != "Text property is required" {
		t.Errorf("Error() = %q, want the bare message", err.Error())
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "text" {
		t.Errorf("errors.As() field = %v, want text", verr)
	}
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()

	err := error(&domain.NotFoundError{ID: 999})

	if err.Error() != "TODO with id 999 not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = false, want true")
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = true, want false")
	}
}

func TestStorageFailure(t *testing.T) {
	t.Parallel()

	err := domain.StorageFailure("find todo", io.ErrUnexpectedEOF)

	if !errors.Is(err, domain.ErrStorage) {
		t.Error("errors.Is(err, ErrStorage) = false, want true")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause dropped from the chain")
	}
}

func TestResult(t *testing.T) {
	t.Parallel()

	ok := domain.Ok(5)
	if v, err := ok.Get(); err != nil || v != 5 {
		t.Errorf("Ok(5).Get() = (%d, %v), want (5, nil)", v, err)
	}
	if ok.Failed() {
		t.Error("Ok(5).Failed() = true")
	}

	failErr := domain.NewValidationError("id", "bad")
	failed := domain.Fail[int](failErr)
	if v, err := failed.Get(); !errors.Is(err, failErr) || v != 0 {
		t.Errorf("Fail().Get() = (%d, %v), want (0, %v)", v, err, failErr)
	}
	if !failed.Failed() {
		t.Error("Fail().Failed() = false")
	}

	if err := domain.Fail[string](nil).Err(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Fail(nil).Err() = %v, want ErrValidation", err)
	}
}
