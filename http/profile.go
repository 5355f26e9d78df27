package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func (s *Server) registerProfileRoutes(r *mux.Router) {
	r.HandleFunc("/profiles", s.requireAuth(s.handleListProfiles)).Methods("GET")
	r.HandleFunc("/profiles", s.requireAuth(s.handleCreateProfile)).Methods("POST")
	r.HandleFunc("/profiles/{id:[0-9]+}", s.requireAuth(s.handleGetProfile)).Methods("GET")
	r.HandleFunc("/profiles/{id:[0-9]+}", s.requireAuth(s.handleUpdateProfile)).Methods("PUT")
	r.HandleFunc("/profiles/{id:[0-9]+}/follow", s.requireAuth(s.handleToggleFollow)).Methods("GET")
	r.HandleFunc("/profiles/{id:[0-9]+}/upload-image", s.requireAuth(s.handleUploadProfileImage)).Methods("POST")
}

// profileInput is the request body of profile create and update.
type profileInput struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
}

// handleListProfiles handles the route "GET /profiles".
// The optional nickname parameter filters by case-insensitive substring.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePagination(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	filter := domain.ProfileFilter{
		Nickname: r.URL.Query().Get("nickname"),
		Page:     page,
		PageSize: pageSize,
	}

	profiles, err := s.prs.Search(filter)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewProfileListViews(profiles)); err != nil {
		errs.LogError(r, err)
	}
}

// handleCreateProfile handles the route "POST /profiles".
// The profile belongs to the authed user; a user has at most one profile.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	profile := domain.Profile{
		UserID:   user.ID,
		Nickname: in.Nickname,
		Bio:      in.Bio,
	}
	if err := s.prs.Create(&profile); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(NewProfileDetailView(&profile, nil)); err != nil {
		errs.LogError(r, err)
	}
}

// handleGetProfile handles the route "GET /profiles/{id}".
// The detail view includes the nicknames of the profile's followers.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	profile, err := s.prs.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	followers, err := s.fs.Followers(profile.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewProfileDetailView(profile, followers)); err != nil {
		errs.LogError(r, err)
	}
}

// handleUpdateProfile handles the route "PUT /profiles/{id}".
// Only the owner may update a profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	profile, err := s.prs.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if profile.UserID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to edit this profile."))
		return
	}

	var in profileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	profile.Nickname = in.Nickname
	profile.Bio = in.Bio
	if err := s.prs.Update(profile); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	followers, err := s.fs.Followers(profile.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(NewProfileDetailView(profile, followers)); err != nil {
		errs.LogError(r, err)
	}
}

// handleToggleFollow handles the route "GET /profiles/{id}/follow".
// It flips the follow edge from the authed user's profile to the target
// profile: following becomes unfollowing and vice versa. Following oneself
// is rejected.
func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	follower, err := s.prs.ByUserID(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	following, err := s.fs.Toggle(follower.ID, id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(struct {
		Following bool `json:"following"`
	}{following}); err != nil {
		errs.LogError(r, err)
	}
}

// handleUploadProfileImage handles the route "POST /profiles/{id}/upload-image".
// Only the owner may upload a profile photo. A new upload replaces the old file.
func (s *Server) handleUploadProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	profile, err := s.prs.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if profile.UserID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to edit this profile."))
		return
	}

	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid multipart form."))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "An image file is required."))
		return
	}
	defer file.Close()

	img := domain.Image{
		OwnerType: domain.OwnerTypeProfile,
		SlugBase:  profile.Nickname,
		File:      file,
		Filename:  header.Filename,
	}
	if err := s.is.Create(&img); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	oldPhoto := profile.Photo
	profile.Photo = img.RelativePath()
	if err := s.prs.Update(profile); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if oldPhoto != "" {
		if err := s.is.Delete(oldPhoto); err != nil {
			errs.LogError(r, err)
		}
	}

	if err := json.NewEncoder(w).Encode(NewProfileImageView(profile)); err != nil {
		errs.LogError(r, err)
	}
}
