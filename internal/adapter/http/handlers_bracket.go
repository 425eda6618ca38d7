package adapthttp

import (
	"errors"
	"log/slog"
	"net/http"

	"newsroom/internal/domain"
)

func (s *Server) handleBracketGet(w http.ResponseWriter, r *http.Request) {
	b, err := s.bracket.Get(r.Context())
	if err != nil {
		s.internalError(w, r, "get bracket", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBracketSave(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	u, err := s.bracket.Save(r.Context(), body)
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeText(w, http.StatusBadRequest, verr.Reason)
		return
	}
	if err != nil {
		s.internalError(w, r, "save bracket", err)
		return
	}

	matches := 0
	for _, round := range u.Parsed.Rounds {
		matches += len(round.Matches)
	}
	s.logger().InfoContext(r.Context(), "bracket saved",
		slog.Int("rounds", len(u.Parsed.Rounds)),
		slog.Int("matches", matches),
		slog.Bool("visible", u.IsVisible == 1),
	)
	writeText(w, http.StatusOK, "Bracket updated")
}
