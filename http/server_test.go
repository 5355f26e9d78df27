package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfSocial/crud"
	"wtfSocial/domain"
	"wtfSocial/storage"
)

// newTestServer wires a full server against a throwaway sqlite database,
// so the tests exercise routing, middleware, handlers and stores together.
func newTestServer(t *testing.T) (*Server, *crud.Services) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Profile{},
		domain.Tag{},
		domain.Post{},
		domain.Follow{},
		domain.BlacklistedToken{},
	))

	services, err := crud.NewServices(db,
		crud.WithUser("pepper"),
		crud.WithProfile(),
		crud.WithTag(),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithToken("secret", time.Minute, time.Hour),
	)
	require.NoError(t, err)

	return NewServer(services, storage.NewImageService()), services
}

// signup creates a user with a profile directly through the services and
// returns the user, their profile and a valid access token.
func signup(t *testing.T, services *crud.Services, email, nickname string) (*domain.User, *domain.Profile, string) {
	t.Helper()
	user := &domain.User{Email: email, Password: "password"}
	require.NoError(t, services.User.Create(user))
	profile := &domain.Profile{UserID: user.ID, Nickname: nickname}
	require.NoError(t, services.Profile.Create(profile))
	pair, err := services.Token.IssuePair(user.ID)
	require.NoError(t, err)
	return user, profile, pair.Access
}

// doJSON runs a JSON request against the server and records the response.
func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

// errCode extracts the error code of a failed response body.
func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, "POST", "/users", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var registered struct {
		User  UserView         `json:"user"`
		Token domain.TokenPair `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.Equal(t, "alice@example.com", registered.User.Email)
	require.NotEmpty(t, registered.Token.Access)
	// The password never shows up in a response.
	require.NotContains(t, w.Body.String(), "password_hash")

	w = doJSON(t, s, "POST", "/users/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pair domain.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Refresh)

	w = doJSON(t, s, "GET", "/users/me", pair.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, "POST", "/users", "", map[string]string{
		"email":    "alice@example.com",
		"password": "abcd",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid", errCode(t, w))
}

func TestRequireAuth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, "GET", "/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, "GET", "/posts", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsRefreshToken(t *testing.T) {
	s, services := newTestServer(t)
	user, _, _ := signup(t, services, "alice@example.com", "alice")
	pair, err := services.Token.IssuePair(user.ID)
	require.NoError(t, err)

	w := doJSON(t, s, "POST", "/users/token/logout", pair.Access, map[string]string{
		"refresh": pair.Refresh,
	})
	require.Equal(t, http.StatusResetContent, w.Code)

	w = doJSON(t, s, "POST", "/users/token/refresh", "", map[string]string{
		"refresh": pair.Refresh,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelfFollowRejected(t *testing.T) {
	s, services := newTestServer(t)
	_, profile, token := signup(t, services, "alice@example.com", "alice")

	w := doJSON(t, s, "GET", "/profiles/"+itoa(profile.ID)+"/follow", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid", errCode(t, w))
}

func TestFollowFeedScenario(t *testing.T) {
	s, services := newTestServer(t)
	_, _, aliceToken := signup(t, services, "alice@example.com", "alice")
	_, bobProfile, bobToken := signup(t, services, "bob@example.com", "bob")

	// Bob writes a post.
	w := doJSON(t, s, "POST", "/posts", bobToken, map[string]interface{}{
		"title": "Hello",
		"text":  "first post",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Alice doesn't see it yet.
	w = doJSON(t, s, "GET", "/posts", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "Hello")

	// Alice follows bob and the post appears in her feed.
	w = doJSON(t, s, "GET", "/profiles/"+itoa(bobProfile.ID)+"/follow", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"following":true`)

	w = doJSON(t, s, "GET", "/posts", aliceToken, nil)
	require.Contains(t, w.Body.String(), "Hello")

	// Toggling again unfollows; the post disappears.
	w = doJSON(t, s, "GET", "/profiles/"+itoa(bobProfile.ID)+"/follow", aliceToken, nil)
	require.Contains(t, w.Body.String(), `"following":false`)

	w = doJSON(t, s, "GET", "/posts", aliceToken, nil)
	require.NotContains(t, w.Body.String(), "Hello")

	// After the unfollow, bob's follower list is empty again.
	w = doJSON(t, s, "GET", "/users/followers", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "alice@example.com")
}

func TestFeedInvalidTagFilter(t *testing.T) {
	s, services := newTestServer(t)
	_, _, token := signup(t, services, "alice@example.com", "alice")

	w := doJSON(t, s, "GET", "/posts?tags=1,abc", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid", errCode(t, w))
}

func TestUploadImageToForeignPost(t *testing.T) {
	s, services := newTestServer(t)
	bob, _, _ := signup(t, services, "bob@example.com", "bob")
	_, _, aliceToken := signup(t, services, "alice@example.com", "alice")

	post := &domain.Post{AuthorID: bob.ID, Title: "Bobs Post", Text: "text"}
	require.NoError(t, services.Post.Create(post, nil))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "pic.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/posts/"+itoa(post.ID)+"/upload-image", &buf)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "unauthorized", errCode(t, w))
}

func TestMutateForeignPost(t *testing.T) {
	s, services := newTestServer(t)
	bob, _, _ := signup(t, services, "bob@example.com", "bob")
	_, _, aliceToken := signup(t, services, "alice@example.com", "alice")

	post := &domain.Post{AuthorID: bob.ID, Title: "Bobs Post", Text: "text"}
	require.NoError(t, services.Post.Create(post, nil))

	w := doJSON(t, s, "PUT", "/posts/"+itoa(post.ID), aliceToken, map[string]string{
		"title": "Hijacked",
		"text":  "nope",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, s, "DELETE", "/posts/"+itoa(post.ID), aliceToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

// itoa shortens the int-to-string conversion of route ids.
func itoa(id int) string {
	return strconv.Itoa(id)
}
