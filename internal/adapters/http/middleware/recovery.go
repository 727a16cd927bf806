package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
)

// Recovery turns a panic below it into a logged 500 envelope. The panic
// value is logged with its stack and never sent to the client. When the
// handler had already started the response only the log line is written.
// http.ErrAbortHandler is re-raised untouched so net/http can drop the
// connection quietly.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recordResponse(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}

				value, stack := unwrapPanic(v)
				if err, ok := value.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(value)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(value)),
					slog.String("stack", string(stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if !rec.Committed() {
					dto.WriteError(rec, r, http.StatusInternalServerError, dto.MsgInternal)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// unwrapPanic returns the original panic value and the stack it was raised
// on, looking through panics forwarded by Timeout.
func unwrapPanic(v any) (any, []byte) {
	if hp, ok := v.(*handlerPanic); ok {
		return hp.value, hp.stack
	}
	return v, debug.Stack()
}
