package crud

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

// Token kinds. Access tokens authenticate requests, refresh tokens may only
// be exchanged for a new pair. The kind is baked into the claims so one can
// never stand in for the other.
const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

// claims are the JWT claims of both token kinds.
type claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"uid"`
	Kind   string `json:"kind"`
}

// TokenService issues and verifies the signed bearer tokens of the auth
// system and keeps the blacklist of revoked refresh tokens.
// It implements the domain.TokenService interface.
type TokenService struct {
	db         *gorm.DB
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService returns an instance of TokenService.
func NewTokenService(db *gorm.DB, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		db:         db,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Ensure the TokenService struct properly implements the domain.TokenService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TokenService = &TokenService{}

// IssuePair returns a fresh access/refresh pair for the given user.
func (ts *TokenService) IssuePair(userID int) (*domain.TokenPair, error) {
	access, err := ts.sign(userID, tokenKindAccess, ts.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ts.sign(userID, tokenKindRefresh, ts.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid, non-blacklisted refresh token for a new pair.
func (ts *TokenService) Refresh(refreshToken string) (*domain.TokenPair, error) {
	userID, err := ts.verify(refreshToken, tokenKindRefresh)
	if err != nil {
		return nil, err
	}
	blacklisted, err := ts.isBlacklisted(refreshToken)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, errs.Errorf(errs.EUNAUTHENTICATED, "The refresh token has been revoked.")
	}
	return ts.IssuePair(userID)
}

// Blacklist revokes a refresh token. The token must be a valid refresh token,
// but revoking an already revoked one is a no-op.
func (ts *TokenService) Blacklist(refreshToken string) error {
	if _, err := ts.verify(refreshToken, tokenKindRefresh); err != nil {
		return err
	}
	entry := domain.BlacklistedToken{Token: refreshToken}
	return ts.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// Parse verifies an access token and returns the user id it was issued to.
func (ts *TokenService) Parse(accessToken string) (int, error) {
	return ts.verify(accessToken, tokenKindAccess)
}

// sign creates a signed token of the given kind for the given user.
func (ts *TokenService) sign(userID int, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Kind:   kind,
	})
	return token.SignedString(ts.secret)
}

// verify checks a token's signature, expiry and kind, and returns the user id.
func (ts *TokenService) verify(tokenString, kind string) (int, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, errs.Errorf(errs.EUNAUTHENTICATED, "The token provided is not valid.")
	}
	if parsed.Kind != kind {
		return 0, errs.Errorf(errs.EUNAUTHENTICATED, "The token provided is not valid.")
	}
	return parsed.UserID, nil
}

// isBlacklisted reports whether a refresh token has been revoked.
func (ts *TokenService) isBlacklisted(token string) (bool, error) {
	var count int64
	err := ts.db.
		Model(&domain.BlacklistedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
