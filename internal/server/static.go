package server

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the single-page front end. Implements the [Handler]
// interface for registration with a [Router].
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a handler serving index.html from dir.
func NewStaticHandler(dir string) *StaticHandler {
	if dir == "" {
		dir = "./static"
	}
	return &StaticHandler{dir: dir}
}

// Routes returns the HTTP routes this handler serves.
func (h *StaticHandler) Routes() []string {
	return []string{"/"}
}

// ServeHTTP serves index.html at the root path. HEAD is accepted so uptime
// probes get a cheap 200 without a body.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte("<h1>index.html not found on server</h1>"))
		}
		return
	}

	http.ServeFile(w, r, index)
}
