package middleware

import "net/http"

// statusRecorder remembers what a handler sent so outer middleware can log,
// trace and count the response after the handler returns.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

// recordResponse wraps w. When w already is a recorder from a middleware
// further out, that recorder is shared instead of stacking another layer.
func recordResponse(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

// Status is the code sent to the client. A handler that wrote nothing gets
// net/http's implicit 200.
func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// Committed reports whether the status line has gone out.
func (s *statusRecorder) Committed() bool { return s.wroteHeader }

// BytesWritten counts body bytes accepted by the underlying writer.
func (s *statusRecorder) BytesWritten() int64 { return s.bytes }

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status, s.wroteHeader = code, true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach Flush and Hijack on the
// underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
