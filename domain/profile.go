package domain

import "time"

// Profile is the social identity wrapping a User account. There is exactly
// one Profile per User. Photo holds the relative path of an uploaded profile
// image, empty if none was uploaded yet. Follow edges between profiles are
// kept in the follows table, see Follow.
type Profile struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id" gorm:"uniqueIndex;notNull"`
	User     *User  `json:"user,omitempty"`
	Nickname string `json:"nickname" gorm:"notNull"`
	Bio      string `json:"bio"`
	Photo    string `json:"photo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileService is a set of methods to manipulate and work with the Profile model.
type ProfileService interface {
	ByID(id int) (*Profile, error)
	ByUserID(userID int) (*Profile, error)
	Create(profile *Profile) error
	Update(profile *Profile) error
	Search(filter ProfileFilter) ([]Profile, error)
}

// ProfileFilter holds the optional filters of a profile search.
// Nickname is matched as a case-insensitive substring.
type ProfileFilter struct {
	Nickname string

	Page     int
	PageSize int
}
