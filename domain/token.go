package domain

import "time"

// TokenPair is the access/refresh credential pair issued on login and
// on refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// BlacklistedToken is a revoked refresh token. Logout inserts the presented
// refresh token here; a blacklisted token can no longer be refreshed.
type BlacklistedToken struct {
	ID        int       `json:"id"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:512;notNull"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenService issues and verifies the bearer tokens of the auth system.
type TokenService interface {
	// IssuePair returns a fresh access/refresh pair for the given user.
	IssuePair(userID int) (*TokenPair, error)
	// Refresh exchanges a valid, non-blacklisted refresh token for a new pair.
	Refresh(refreshToken string) (*TokenPair, error)
	// Blacklist revokes a refresh token. Revoking an already revoked token
	// is a no-op.
	Blacklist(refreshToken string) error
	// Parse verifies an access token and returns the user id it was issued to.
	Parse(accessToken string) (int, error)
}
