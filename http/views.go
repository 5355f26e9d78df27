package http

import "wtfSocial/domain"

// The view types below make up the serialization layer. Each entity has a
// fixed set of named response shapes - list, detail, image - and the handler
// picks one explicitly. A view is a pure mapping from entity to response
// fields; nothing outside its declared field set ever leaks out, in
// particular no password hash.

// UserView is the response shape of a user account.
type UserView struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

// NewUserView maps a User to its response shape.
func NewUserView(user *domain.User) *UserView {
	return &UserView{
		ID:      user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
	}
}

// NewUserViews maps a slice of Users to their response shape.
func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = *NewUserView(&users[i])
	}
	return views
}

// TagView is the response shape of a tag.
type TagView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NewTagView maps a Tag to its response shape.
func NewTagView(tag *domain.Tag) *TagView {
	return &TagView{ID: tag.ID, Name: tag.Name}
}

// NewTagViews maps a slice of Tags to their response shape.
func NewTagViews(tags []domain.Tag) []TagView {
	views := make([]TagView, len(tags))
	for i := range tags {
		views[i] = *NewTagView(&tags[i])
	}
	return views
}

// PostListView is the minimal response shape of a post in a listing:
// tags collapse to their names, the author to its id.
type PostListView struct {
	ID     int      `json:"id"`
	Author int      `json:"author"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Image  string   `json:"image"`
}

// NewPostListView maps a Post to its list response shape.
func NewPostListView(post *domain.Post) *PostListView {
	names := make([]string, len(post.Tags))
	for i, t := range post.Tags {
		names[i] = t.Name
	}
	return &PostListView{
		ID:     post.ID,
		Author: post.AuthorID,
		Title:  post.Title,
		Tags:   names,
		Image:  post.Image,
	}
}

// NewPostListViews maps a slice of Posts to their list response shape.
func NewPostListViews(posts []domain.Post) []PostListView {
	views := make([]PostListView, len(posts))
	for i := range posts {
		views[i] = *NewPostListView(&posts[i])
	}
	return views
}

// PostDetailView is the full response shape of a post.
type PostDetailView struct {
	ID     int            `json:"id"`
	Title  string         `json:"title"`
	Author int            `json:"author"`
	Text   string         `json:"text"`
	Image  *PostImageView `json:"image"`
	Tags   []TagView      `json:"tags"`
}

// NewPostDetailView maps a Post to its detail response shape.
func NewPostDetailView(post *domain.Post) *PostDetailView {
	return &PostDetailView{
		ID:     post.ID,
		Title:  post.Title,
		Author: post.AuthorID,
		Text:   post.Text,
		Image:  NewPostImageView(post),
		Tags:   NewTagViews(post.Tags),
	}
}

// PostImageView is the response shape of the post image upload action.
type PostImageView struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// NewPostImageView maps a Post to its image response shape.
func NewPostImageView(post *domain.Post) *PostImageView {
	return &PostImageView{ID: post.ID, Image: post.Image}
}

// ProfileListView is the minimal response shape of a profile in a listing.
type ProfileListView struct {
	ID       int    `json:"id"`
	User     int    `json:"user"`
	Nickname string `json:"nickname"`
}

// NewProfileListView maps a Profile to its list response shape.
func NewProfileListView(profile *domain.Profile) *ProfileListView {
	return &ProfileListView{
		ID:       profile.ID,
		User:     profile.UserID,
		Nickname: profile.Nickname,
	}
}

// NewProfileListViews maps a slice of Profiles to their list response shape.
func NewProfileListViews(profiles []domain.Profile) []ProfileListView {
	views := make([]ProfileListView, len(profiles))
	for i := range profiles {
		views[i] = *NewProfileListView(&profiles[i])
	}
	return views
}

// ProfileDetailView is the full response shape of a profile. Followers
// collapse to their nicknames.
type ProfileDetailView struct {
	ID        int      `json:"id"`
	User      int      `json:"user"`
	Nickname  string   `json:"nickname"`
	Bio       string   `json:"bio"`
	Photo     string   `json:"photo"`
	Followers []string `json:"followers"`
}

// NewProfileDetailView maps a Profile and its followers to the detail
// response shape.
func NewProfileDetailView(profile *domain.Profile, followers []domain.Profile) *ProfileDetailView {
	nicknames := make([]string, len(followers))
	for i, f := range followers {
		nicknames[i] = f.Nickname
	}
	return &ProfileDetailView{
		ID:        profile.ID,
		User:      profile.UserID,
		Nickname:  profile.Nickname,
		Bio:       profile.Bio,
		Photo:     profile.Photo,
		Followers: nicknames,
	}
}

// ProfileImageView is the response shape of the profile image upload action.
type ProfileImageView struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// NewProfileImageView maps a Profile to its image response shape.
func NewProfileImageView(profile *domain.Profile) *ProfileImageView {
	return &ProfileImageView{ID: profile.ID, Image: profile.Photo}
}
