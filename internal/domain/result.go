package domain

// Result is a success-or-failure value. Exactly one of the two branches is
// populated: a failed Result carries a non-nil error and the zero T.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a failure. A nil err is replaced with ErrValidation so that a
// failed Result can never be mistaken for a successful one.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrValidation
	}
	return Result[T]{err: err}
}

// Get returns the value and the failure. Callers must check the error before
// using the value.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Failed reports whether r holds a failure.
func (r Result[T]) Failed() bool {
	return r.err != nil
}
