package domain

import "time"

// Pagination bounds of post and profile listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Post is a piece of content written by exactly one author (a User). Image
// holds the relative path of an uploaded post image, empty if none. Tags is
// a many-to-many association via the post_tags join table.
type Post struct {
	ID       int    `json:"id"`
	AuthorID int    `json:"author_id" gorm:"notNull;index"`
	Author   *User  `json:"author,omitempty"`
	Title    string `json:"title" gorm:"size:255;notNull"`
	Text     string `json:"text"`
	Image    string `json:"image"`
	Tags     []Tag  `json:"tags" gorm:"many2many:post_tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
//
// Feed returns the posts visible to the given user: their own posts plus the
// posts of every user whose profile they follow, with the optional filters
// applied. Results are de-duplicated and ordered by creation time (then id,
// so the order is stable), oldest first.
type PostService interface {
	ByID(id int) (*Post, error)
	Create(post *Post, tagIDs []int) error
	Update(post *Post, tagIDs []int) error
	Delete(post *Post) error
	Feed(userID int, filter PostFilter) ([]Post, error)
}

// PostFilter holds the optional filters of a feed query. Title is matched as
// a case-insensitive substring. TagIDs keeps posts having at least one of the
// given tags.
type PostFilter struct {
	Title  string
	TagIDs []int

	Page     int
	PageSize int
}
