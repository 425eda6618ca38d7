package adapthttp

import (
	"net/http"

	"newsroom/internal/app"
	"newsroom/internal/domain"
)

const storyNotFound = "Story Not Found"

func (s *Server) handleStoriesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.stories.List(r.Context(), domain.StoryFilter{
		Category: q.Get("category"),
		Author:   q.Get("author"),
	})
	if err != nil {
		s.internalError(w, r, "list stories", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleStoriesFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := s.stories.Featured(r.Context())
	if err != nil {
		s.internalError(w, r, "list featured stories", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleStoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, storyNotFound)
		return
	}
	story, err := s.stories.Get(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, "get story", err, storyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, story)
}

func (s *Server) handleStoryCreate(w http.ResponseWriter, r *http.Request) {
	var in app.StoryInput
	if err := parseJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := s.stories.Create(r.Context(), in); err != nil {
		s.serviceError(w, r, "create story", err, storyNotFound)
		return
	}
	writeText(w, http.StatusCreated, "Story saved!")
}

func (s *Server) handleStoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, storyNotFound)
		return
	}
	var in app.StoryInput
	if err := parseJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.stories.Update(r.Context(), id, in); err != nil {
		s.serviceError(w, r, "update story", err, storyNotFound)
		return
	}
	writeText(w, http.StatusOK, "Story Updated")
}

func (s *Server) handleStoryToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, storyNotFound)
		return
	}
	if err := s.stories.ToggleFeatured(r.Context(), id); err != nil {
		s.serviceError(w, r, "toggle story", err, storyNotFound)
		return
	}
	writeText(w, http.StatusOK, "Toggled")
}

func (s *Server) handleStoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, storyNotFound)
		return
	}
	if err := s.stories.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, "delete story", err, storyNotFound)
		return
	}
	writeText(w, http.StatusOK, "Deleted")
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.stories.Authors(r.Context())
	if err != nil {
		s.internalError(w, r, "list authors", err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}
