package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// userKey is the context key under which the authenticated user travels
// through a request. It's a private type, so no other package can collide
// with it or sneak a user into the context.
type privateKey string

const userKey privateKey = "user"

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/users", s.handleRegister).Methods("POST")
	r.HandleFunc("/users/token", s.handleLogin).Methods("POST")
	r.HandleFunc("/users/token/refresh", s.handleRefreshToken).Methods("POST")
	r.HandleFunc("/users/token/logout", s.requireAuth(s.handleLogout)).Methods("POST")
}

// handleRegister handles the route "POST /users".
// It creates a new user account together with a fresh token pair,
// so a registered user is logged in right away.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	if err := s.us.Create(&user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	pair, err := s.tks.IssuePair(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(struct {
		User  *UserView         `json:"user"`
		Token *domain.TokenPair `json:"token"`
	}{NewUserView(&user), pair}); err != nil {
		errs.LogError(r, err)
	}
}

// handleLogin handles the route "POST /users/token".
// It checks the submitted credentials and returns an access/refresh pair.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	user, err := s.us.Authenticate(creds.Email, creds.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	pair, err := s.tks.IssuePair(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(pair); err != nil {
		errs.LogError(r, err)
	}
}

// handleRefreshToken handles the route "POST /users/token/refresh".
// It exchanges a valid refresh token for a new pair.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	pair, err := s.tks.Refresh(body.Refresh)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(pair); err != nil {
		errs.LogError(r, err)
	}
}

// handleLogout handles the route "POST /users/token/logout".
// It blacklists the submitted refresh token server-side. The access token
// simply expires; it is short-lived and cannot be refreshed anymore.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid request body."))
		return
	}

	if err := s.tks.Blacklist(body.Refresh); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusResetContent)
}

// The authUser middleware resolves the bearer token of the Authorization
// header into a user and puts it into the request context. Requests without
// a valid token pass through anonymously; requireAuth decides per route
// whether that's acceptable.
func (s *Server) authUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := s.tks.Parse(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByID(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(s.setUserInContext(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests that carry no authenticated user.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.getUserFromContext(r.Context())
		if user == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHENTICATED, "Authentication required."))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) setUserInContext(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func (s *Server) getUserFromContext(ctx context.Context) *domain.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*domain.User); ok {
			return user
		}
	}
	return nil
}
