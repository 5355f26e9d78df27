package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfSocial/crud"
	"wtfSocial/domain"
	"wtfSocial/storage"
)

// Server provides the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	prs    domain.ProfileService
	ts     domain.TagService
	ps     domain.PostService
	fs     domain.FollowService
	is     domain.ImageService
	tks    domain.TokenService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(services *crud.Services, is *storage.ImageService) *Server {
	s := &Server{
		router: mux.NewRouter(),
		us:     services.User,
		prs:    services.Profile,
		ts:     services.Tag,
		ps:     services.Post,
		fs:     services.Follow,
		is:     is,
		tks:    services.Token,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)
	s.registerUserRoutes(s.router)

	// Register routes of the crud system.
	s.registerPostRoutes(s.router)
	s.registerTagRoutes(s.router)
	s.registerProfileRoutes(s.router)

	// Set up middleware that needs to run on every request.
	s.router.Use(setContentTypeJSON, s.authUser)
	return s
}

// ServeHTTP lets the Server act as an http.Handler, which the tests use
// to run requests against the full middleware and routing stack.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := ":" + strconv.Itoa(port)
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, s.router); err != nil {
		slog.Error("server stopped", "err", err)
	}
}
