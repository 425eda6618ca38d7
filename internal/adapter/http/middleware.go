package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"newsroom/internal/app"

	"github.com/google/uuid"
)

// CookieName is the session cookie. The __Host- prefix makes browsers accept
// it only from this exact host over HTTPS with Path=/, which blocks
// subdomain cookie injection.
const CookieName = "__Host-auth_token"

// sessionToken extracts the session token from the request cookies. A
// missing or unparseable cookie yields "".
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// requireAdmin runs next only for requests carrying a live session. Each
// successful check also slides the session expiry (see AuthService.Authorize).
// Rejections are 403 regardless of why the token was refused.
func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := s.auth.Authorize(r.Context(), sessionToken(r))
		if err != nil {
			authChecks.WithLabelValues("error").Inc()
			s.logger().ErrorContext(r.Context(), "authorize", slog.String("path", r.URL.Path), slog.Any("error", err))
			writeText(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			authChecks.WithLabelValues("rejected").Inc()
			writeText(w, http.StatusForbidden, "Forbidden")
			return
		}
		authChecks.WithLabelValues("authorized").Inc()
		next.ServeHTTP(w, r)
	})
}

// setSessionCookie writes the login cookie, or clears it when token is "".
func setSessionCookie(w http.ResponseWriter, token string) {
	maxAge := int(app.SessionTTL / time.Second)
	if token == "" {
		maxAge = -1 // emitted as Max-Age=0
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// requestID propagates X-Request-ID, generating one when the client sent none.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r.Header.Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs one line per request and records request metrics.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		observeRequest(r, rec.status, elapsed)
		s.logger().InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", elapsed),
			slog.String("request_id", r.Header.Get("X-Request-ID")),
		)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.log == nil {
		return slog.Default()
	}
	return s.log
}
