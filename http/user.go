package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfSocial/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/users/me", s.requireAuth(s.handleGetMe)).Methods("GET")
	r.HandleFunc("/users/me", s.requireAuth(s.handleUpdateMe)).Methods("PUT")
	r.HandleFunc("/users/followers", s.requireAuth(s.handleListMyFollowers)).Methods("GET")
}

// handleGetMe handles the route "GET /users/me".
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	if err := json.NewEncoder(w).Encode(NewUserView(user)); err != nil {
		errs.LogError(r, err)
	}
}

// handleUpdateMe handles the route "PUT /users/me".
// It updates the authed user's email and, if submitted, the password.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	user.Email = in.Email
	user.Password = in.Password
	if err := s.us.Update(user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewUserView(user)); err != nil {
		errs.LogError(r, err)
	}
}

// handleListMyFollowers handles the route "GET /users/followers".
// It returns the user accounts behind the profiles following the authed
// user's profile.
func (s *Server) handleListMyFollowers(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	profile, err := s.prs.ByUserID(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	followers, err := s.fs.Followers(profile.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	views := make([]UserView, 0, len(followers))
	for _, f := range followers {
		if f.User != nil {
			views = append(views, *NewUserView(f.User))
		}
	}
	if err := json.NewEncoder(w).Encode(views); err != nil {
		errs.LogError(r, err)
	}
}
