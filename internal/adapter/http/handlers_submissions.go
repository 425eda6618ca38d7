package adapthttp

import (
	"net/http"
)

const submissionNotFound = "Submission Not Found"

func (s *Server) handleSubmissionCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Idea  string `json:"idea"`
	}
	if err := parseJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := s.submissions.Submit(r.Context(), body.Name, body.Email, body.Idea); err != nil {
		s.serviceError(w, r, "create submission", err, submissionNotFound)
		return
	}
	writeText(w, http.StatusCreated, "Idea received!")
}

func (s *Server) handleSubmissionsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.submissions.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list submissions", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSubmissionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeText(w, http.StatusNotFound, submissionNotFound)
		return
	}
	if err := s.submissions.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, "delete submission", err, submissionNotFound)
		return
	}
	writeText(w, http.StatusOK, "Submission Deleted")
}
