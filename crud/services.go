package crud

import (
	"time"

	"gorm.io/gorm"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db      *gorm.DB
	User    *UserService
	Profile *ProfileService
	Tag     *TagService
	Post    *PostService
	Follow  *FollowService
	Token   *TokenService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it creates.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser(pepper string) ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db, pepper)
		return nil
	}
}

// WithProfile wraps the constructor of ProfileService, NewProfileService.
func WithProfile() ServicesConfig {
	return func(s *Services) error {
		s.Profile = NewProfileService(s.db)
		return nil
	}
}

// WithTag wraps the constructor of TagService, NewTagService.
func WithTag() ServicesConfig {
	return func(s *Services) error {
		s.Tag = NewTagService(s.db)
		return nil
	}
}

// WithPost wraps the constructor of PostService, NewPostService.
func WithPost() ServicesConfig {
	return func(s *Services) error {
		s.Post = NewPostService(s.db)
		return nil
	}
}

// WithFollow wraps the constructor of FollowService, NewFollowService.
func WithFollow() ServicesConfig {
	return func(s *Services) error {
		s.Follow = NewFollowService(s.db)
		return nil
	}
}

// WithToken wraps the constructor of TokenService, NewTokenService.
func WithToken(secret string, accessTTL, refreshTTL time.Duration) ServicesConfig {
	return func(s *Services) error {
		s.Token = NewTokenService(s.db, secret, accessTTL, refreshTTL)
		return nil
	}
}
