package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"newsroom/internal/app"
)

// maxBodyBytes bounds every API request body.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeText writes a plain-text acknowledgement. The admin UI shows these
// bodies to the user verbatim.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

// internalError logs err and writes a generic 500. Store and driver errors
// never reach the client.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger().ErrorContext(r.Context(), msg, slog.String("path", r.URL.Path), slog.Any("error", err))
	writeText(w, http.StatusInternalServerError, "internal error")
}

// serviceError maps a service error to a response: app.ErrInvalidInput is a
// 400 with the error text, app.ErrNotFound a 404 with notFoundMsg, anything
// else a logged 500.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, msg string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		writeText(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		writeText(w, http.StatusNotFound, notFoundMsg)
	default:
		s.internalError(w, r, msg, err)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// pathID parses the {id} wildcard. Anything but a positive integer is
// reported as not ok.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
