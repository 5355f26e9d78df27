package crud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/errs"
)

func TestTokenPairRoundtrip(t *testing.T) {
	db := testDB(t)
	ts := NewTokenService(db, "secret", time.Minute, time.Hour)

	pair, err := ts.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	userID, err := ts.Parse(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	db := testDB(t)
	ts := NewTokenService(db, "secret", time.Minute, time.Hour)

	pair, err := ts.IssuePair(42)
	require.NoError(t, err)

	// A refresh token does not authenticate requests.
	_, err = ts.Parse(pair.Refresh)
	assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))

	// An access token cannot be refreshed.
	_, err = ts.Refresh(pair.Access)
	assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
}

func TestTokenRefresh(t *testing.T) {
	db := testDB(t)
	ts := NewTokenService(db, "secret", time.Minute, time.Hour)

	pair, err := ts.IssuePair(42)
	require.NoError(t, err)

	fresh, err := ts.Refresh(pair.Refresh)
	require.NoError(t, err)
	userID, err := ts.Parse(fresh.Access)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenBlacklist(t *testing.T) {
	db := testDB(t)
	ts := NewTokenService(db, "secret", time.Minute, time.Hour)

	pair, err := ts.IssuePair(42)
	require.NoError(t, err)

	require.NoError(t, ts.Blacklist(pair.Refresh))
	// Revoking twice is a no-op.
	require.NoError(t, ts.Blacklist(pair.Refresh))

	_, err = ts.Refresh(pair.Refresh)
	assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
}

func TestTokenExpiry(t *testing.T) {
	db := testDB(t)
	ts := NewTokenService(db, "secret", -time.Minute, time.Hour)

	pair, err := ts.IssuePair(42)
	require.NoError(t, err)

	_, err = ts.Parse(pair.Access)
	assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
}

func TestTokenWrongSecret(t *testing.T) {
	db := testDB(t)
	pair, err := NewTokenService(db, "secret", time.Minute, time.Hour).IssuePair(42)
	require.NoError(t, err)

	other := NewTokenService(db, "other-secret", time.Minute, time.Hour)
	_, err = other.Parse(pair.Access)
	assert.Equal(t, errs.EUNAUTHENTICATED, errs.ErrorCode(err))
}
