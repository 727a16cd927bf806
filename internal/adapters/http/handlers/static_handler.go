package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/jsamuelsen11/todo-api/internal/adapters/http/dto"
)

const spaEntry = "index.html"

// StaticHandler serves a single-page app from a directory. Existing files are
// served as-is and every other GET falls back to index.html so that
// client-side routes resolve.
type StaticHandler struct {
	dir   string
	files http.Handler
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		dto.WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		h.files.ServeHTTP(w, r)
		return
	}

	entry := filepath.Join(h.dir, spaEntry)
	if _, err := os.Stat(entry); err != nil {
		dto.WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	http.ServeFile(w, r, entry)
}
