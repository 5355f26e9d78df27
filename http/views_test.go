package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/domain"
)

func TestUserViewHidesCredentials(t *testing.T) {
	user := &domain.User{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$supersecret",
		IsStaff:      true,
	}
	data, err := json.Marshal(NewUserView(user))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "supersecret")
	assert.JSONEq(t, `{"id":1,"email":"alice@example.com","is_staff":true}`, string(data))
}

func TestPostListViewCollapsesTags(t *testing.T) {
	post := &domain.Post{
		ID:       7,
		AuthorID: 1,
		Title:    "Hello",
		Text:     "full text that the list view must not include",
		Tags:     []domain.Tag{{ID: 1, Name: "space"}, {ID: 2, Name: "tech"}},
	}
	view := NewPostListView(post)
	assert.Equal(t, []string{"space", "tech"}, view.Tags)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "full text")
}

func TestPostDetailView(t *testing.T) {
	post := &domain.Post{
		ID:       7,
		AuthorID: 1,
		Title:    "Hello",
		Text:     "body",
		Image:    "uploads/posts/hello-abc.png",
		Tags:     []domain.Tag{{ID: 1, Name: "space"}},
	}
	view := NewPostDetailView(post)
	assert.Equal(t, "body", view.Text)
	require.NotNil(t, view.Image)
	assert.Equal(t, "uploads/posts/hello-abc.png", view.Image.Image)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "space", view.Tags[0].Name)
}

func TestProfileDetailViewFollowers(t *testing.T) {
	profile := &domain.Profile{ID: 3, UserID: 9, Nickname: "alice", Bio: "hi"}
	followers := []domain.Profile{{Nickname: "bob"}, {Nickname: "carol"}}

	view := NewProfileDetailView(profile, followers)
	assert.Equal(t, []string{"bob", "carol"}, view.Followers)
	assert.Equal(t, 9, view.User)
}
