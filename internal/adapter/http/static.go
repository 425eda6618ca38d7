package adapthttp

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// staticFiles serves the document root. r.URL.Path is already
// percent-decoded, so encoded traversal sequences are caught by the same
// containment check as literal ones.
func (s *Server) staticFiles() http.Handler {
	root, err := filepath.Abs(s.webDir)
	if err != nil {
		root = filepath.Clean(s.webDir)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}

		reqPath := r.URL.Path
		if reqPath == "/" || reqPath == "" {
			reqPath = "/index.html"
		}

		full := filepath.Join(root, filepath.FromSlash(reqPath))
		if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
			writeText(w, http.StatusForbidden, "Forbidden")
			return
		}
		if strings.HasPrefix(filepath.Base(full), ".") {
			writeText(w, http.StatusForbidden, "Forbidden")
			return
		}

		f, err := os.Open(full)
		if err != nil {
			s.notFound(w, r, root)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			s.notFound(w, r, root)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// notFound writes root/404.html with a 404 status, or a plain body when the
// page does not exist.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request, root string) {
	page, err := os.ReadFile(filepath.Join(root, "404.html"))
	if err != nil {
		writeText(w, http.StatusNotFound, "Not Found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(page); err != nil {
		s.logger().DebugContext(r.Context(), "write 404 page", slog.Any("error", err))
	}
}
