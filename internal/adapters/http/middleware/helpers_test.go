package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, http.NoBody)
}

func serveRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	return serveRequest(h, newRequest(method, target))
}

// logEntry finds the first JSON log line with the given msg.
func logEntry(t *testing.T, buf *bytes.Buffer, msg string) map[string]any {
	t.Helper()

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", sc.Text())
		}
		if entry["msg"] == msg {
			return entry
		}
	}
	t.Fatalf("no %q log line in:\n%s", msg, buf.String())
	return nil
}
