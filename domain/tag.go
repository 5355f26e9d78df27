package domain

// Tag labels posts. Tags are created through their own endpoint and posts
// reference them by id; creating a post never creates tags on the fly.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name" gorm:"size:63;notNull"`
}

// TagService is a set of methods to manipulate and work with the Tag model.
type TagService interface {
	Create(tag *Tag) error
	All() ([]Tag, error)
	ByIDs(ids []int) ([]Tag, error)
}
