package domain

import "time"

// User is an account identity. It carries the login credential and the staff
// flag; everything social (nickname, bio, follow edges) lives on the user's
// Profile. Password is the plain-text input field and is never persisted or
// serialized; only PasswordHash is stored.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email" gorm:"uniqueIndex;notNull"`
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"notNull"`
	IsStaff      bool   `json:"is_staff"`

	Profile *Profile `json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	ByID(id int) (*User, error)
	ByEmail(email string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	Authenticate(email, password string) (*User, error)
}
