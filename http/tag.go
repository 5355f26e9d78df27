package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func (s *Server) registerTagRoutes(r *mux.Router) {
	r.HandleFunc("/tags", s.requireAuth(s.handleListTags)).Methods("GET")
	r.HandleFunc("/tags", s.requireAuth(s.handleCreateTag)).Methods("POST")
}

// handleListTags handles the route "GET /tags".
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.ts.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(NewTagViews(tags)); err != nil {
		errs.LogError(r, err)
	}
}

// handleCreateTag handles the route "POST /tags".
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var tag domain.Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}
	tag.ID = 0

	if err := s.ts.Create(&tag); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(NewTagView(&tag)); err != nil {
		errs.LogError(r, err)
	}
}
