package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/posts", s.requireAuth(s.handleListPosts)).Methods("GET")
	r.HandleFunc("/posts", s.requireAuth(s.handleCreatePost)).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}", s.requireAuth(s.handleGetPost)).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}", s.requireAuth(s.handleUpdatePost)).Methods("PUT")
	r.HandleFunc("/posts/{id:[0-9]+}", s.requireAuth(s.handleDeletePost)).Methods("DELETE")
	r.HandleFunc("/posts/{id:[0-9]+}/upload-image", s.requireAuth(s.handleUploadPostImage)).Methods("POST")
}

// postInput is the request body of post create and update.
type postInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Tags  []int  `json:"tags"`
}

// handleListPosts handles the route "GET /posts".
// It returns the feed of the authed user: their own posts and the posts of
// everyone they follow, with the optional title/tags filters applied.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePostFilter(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	posts, err := s.ps.Feed(user.ID, filter)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewPostListViews(posts)); err != nil {
		errs.LogError(r, err)
	}
}

// handleCreatePost handles the route "POST /posts".
// The authed user becomes the author; tags are referenced by id and must
// already exist.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	post := domain.Post{
		AuthorID: user.ID,
		Title:    in.Title,
		Text:     in.Text,
	}
	if err := s.ps.Create(&post, in.Tags); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(NewPostDetailView(&post)); err != nil {
		errs.LogError(r, err)
	}
}

// handleGetPost handles the route "GET /posts/{id}".
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewPostDetailView(post)); err != nil {
		errs.LogError(r, err)
	}
}

// handleUpdatePost handles the route "PUT /posts/{id}".
// Only the author may update a post.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if post.AuthorID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to edit this post."))
		return
	}

	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	post.Title = in.Title
	post.Text = in.Text
	if err := s.ps.Update(post, in.Tags); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(NewPostDetailView(post)); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeletePost handles the route "DELETE /posts/{id}".
// Only the author may delete a post. The post's image file goes with it.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if post.AuthorID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to delete this post."))
		return
	}

	if err := s.ps.Delete(post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if post.Image != "" {
		if err := s.is.Delete(post.Image); err != nil {
			errs.LogError(r, err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUploadPostImage handles the route "POST /posts/{id}/upload-image".
// Only the author may upload an image. A new upload replaces the old file.
func (s *Server) handleUploadPostImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if post.AuthorID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to edit this post."))
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
		OwnerType: domain.OwnerTypePost,
		SlugBase:  post.Title,
		File:      file,
		Filename:  header.Filename,
	}
	if err := s.is.Create(&img); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	oldImage := post.Image
	post.Image = img.RelativePath()
	if err := s.ps.Update(post, nil); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if oldImage != "" {
		if err := s.is.Delete(oldImage); err != nil {
			errs.LogError(r, err)
		}
	}

	if err := json.NewEncoder(w).Encode(NewPostImageView(post)); err != nil {
		errs.LogError(r, err)
	}
}

// parsePostFilter reads the feed's query parameters: title (substring),
// tags (comma-separated tag ids), page and page_size.
func parsePostFilter(r *http.Request) (domain.PostFilter, error) {
	var filter domain.PostFilter
	q := r.URL.Query()

	filter.Title = q.Get("title")

	tagIDs, err := parseTagIDs(q.Get("tags"))
	if err != nil {
		return filter, err
	}
	filter.TagIDs = tagIDs

	filter.Page, filter.PageSize, err = parsePagination(r)
	return filter, err
}

// parseTagIDs converts a comma-separated list of tag ids to integers.
// A non-numeric token is a client error.
func parseTagIDs(param string) ([]int, error) {
	if param == "" {
		return nil, nil
	}
	tokens := strings.Split(param, ",")
	ids := make([]int, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, errs.Errorf(errs.EINVALID, "Invalid tag filter value %q.", token)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePagination reads the page and page_size query parameters.
// Missing values are 0; the store clamps them to their defaults.
func parsePagination(r *http.Request) (page, pageSize int, err error) {
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page <= 0 {
			return 0, 0, errs.Errorf(errs.EINVALID, "Invalid page value %q.", v)
		}
	}
	if v := q.Get("page_size"); v != "" {
		pageSize, err = strconv.Atoi(v)
		if err != nil || pageSize <= 0 {
			return 0, 0, errs.Errorf(errs.EINVALID, "Invalid page_size value %q.", v)
		}
	}
	return page, pageSize, nil
}
