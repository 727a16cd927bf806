package middleware

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
)

const msgTimeout = "request timed out"

// Timeout bounds every request by d. The handler runs on its own goroutine
// with a context carrying the deadline and writes into a buffer; the buffer
// is copied to the client only if the handler finishes in time. Otherwise
// the client gets a 504 envelope and later handler writes fail with
// http.ErrHandlerTimeout.
//
// A panic on the handler goroutine is re-raised on the serving goroutine,
// wrapped with its original stack, so Recovery can still answer it.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			bw := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan *handlerPanic, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- &handlerPanic{value: v, stack: debug.Stack()}
					}
				}()
				next.ServeHTTP(bw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)

			case <-done:
				bw.mu.Lock()
				defer bw.mu.Unlock()
				bw.copyTo(w)

			case <-ctx.Done():
				bw.mu.Lock()
				defer bw.mu.Unlock()
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					// Client went away; nobody is left to answer.
					bw.err = ctx.Err()
					return
				}
				bw.err = http.ErrHandlerTimeout
				dto.WriteError(w, r, http.StatusGatewayTimeout, msgTimeout)
			}
		})
	}
}

// handlerPanic carries a panic from the Timeout goroutine to the serving
// goroutine together with the stack where it was raised.
type handlerPanic struct {
	value any
	stack []byte
}

// bufferedWriter holds the handler's response until Timeout decides who
// answers the client. Once err is set every write is rejected.
type bufferedWriter struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	status int
	err    error
}

// Header is only read by the serving goroutine after the handler returned.
func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil || b.status != 0 {
		return
	}
	b.status = code
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return 0, b.err
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// copyTo sends the buffered response to w. The caller holds b.mu.
func (b *bufferedWriter) copyTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
