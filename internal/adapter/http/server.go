package adapthttp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"newsroom/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth        *app.AuthService
	bracket     *app.BracketService
	stories     *app.StoryService
	submissions *app.SubmissionService
	webDir      string
	log         *slog.Logger
	health      func(context.Context) error
}

// New creates a Server wired to the given application services. Static files
// are served from webDir.
func New(auth *app.AuthService, bracket *app.BracketService, stories *app.StoryService, submissions *app.SubmissionService, webDir string) *Server {
	return &Server{
		auth:        auth,
		bracket:     bracket,
		stories:     stories,
		submissions: submissions,
		webDir:      webDir,
		log:         slog.Default(),
	}
}

// WithLogger sets the logger used for request and error logging.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.log = l
	}
	return s
}

// WithHealthCheck sets the store check run by GET /api/health.
func (s *Server) WithHealthCheck(check func(context.Context) error) *Server {
	s.health = check
	return s
}

// Handler returns the root http.Handler for the application.
//
// Paths under /api/ are dispatched through the route table; everything else
// goes to the static file server, which sees the raw request path so that it
// can enforce its own containment rules.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/health", s.handleHealth)

	api.HandleFunc("POST /api/login", s.handleLogin)
	api.HandleFunc("POST /api/logout", s.handleLogout)

	api.HandleFunc("GET /api/bracket", s.handleBracketGet)
	api.Handle("POST /api/bracket", s.requireAdmin(s.handleBracketSave))

	api.HandleFunc("GET /api/stories", s.handleStoriesList)
	api.HandleFunc("GET /api/stories/featured", s.handleStoriesFeatured)
	api.HandleFunc("GET /api/stories/{id}", s.handleStoryGet)
	api.Handle("POST /api/stories", s.requireAdmin(s.handleStoryCreate))
	api.Handle("PUT /api/stories/update/{id}", s.requireAdmin(s.handleStoryUpdate))
	api.Handle("POST /api/stories/toggle/{id}", s.requireAdmin(s.handleStoryToggle))
	api.Handle("DELETE /api/stories/delete/{id}", s.requireAdmin(s.handleStoryDelete))
	api.HandleFunc("GET /api/authors", s.handleAuthors)

	api.HandleFunc("POST /api/submissions", s.handleSubmissionCreate)
	api.Handle("GET /api/submissions", s.requireAdmin(s.handleSubmissionsList))
	api.Handle("DELETE /api/submissions/delete/{id}", s.requireAdmin(s.handleSubmissionDelete))

	api.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusNotFound, "API Route Not Found")
	})

	apiHandler := withNoCache(api)
	static := s.staticFiles()

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			apiHandler.ServeHTTP(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})

	return s.requestID(s.loggingMiddleware(root))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger().ErrorContext(r.Context(), "health check", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
