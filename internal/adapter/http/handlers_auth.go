// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"errors"
	"log/slog"
	"net/http"

	"newsroom/internal/app"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := parseJSON(w, r, &req); err != nil {
		writeText(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		s.logger().WarnContext(r.Context(), "login rejected", slog.String("remote", r.RemoteAddr))
		writeText(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		s.logger().ErrorContext(r.Context(), "login", slog.Any("error", err))
		writeText(w, http.StatusInternalServerError, "internal error")
		return
	}

	setSessionCookie(w, token)
	writeText(w, http.StatusOK, "Authorized")
}

// handleLogout always clears the cookie, even if the token was unknown or the
// store delete failed.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := s.auth.Logout(r.Context(), token); err != nil {
			s.logger().ErrorContext(r.Context(), "logout", slog.Any("error", err))
		}
	}
	setSessionCookie(w, "")
	writeText(w, http.StatusOK, "Logged out")
}
