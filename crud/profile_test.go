package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func TestCreateProfile(t *testing.T) {
	db := testDB(t)
	user, _ := seedUser(t, db, "alice@example.com", "alice")
	prs := NewProfileService(db)

	// seedUser already created alice's profile; a second one is a conflict.
	err := prs.Create(&domain.Profile{UserID: user.ID, Nickname: "alice2"})
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))

	err = prs.Create(&domain.Profile{Nickname: "nobody"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = prs.Create(&domain.Profile{UserID: user.ID + 1, Nickname: " "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestProfileByUserID(t *testing.T) {
	db := testDB(t)
	user, profile := seedUser(t, db, "alice@example.com", "alice")
	prs := NewProfileService(db)

	got, err := prs.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)

	_, err = prs.ByUserID(user.ID + 1000)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestProfileSearch(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "alice@example.com", "CoolAlice")
	seedUser(t, db, "bob@example.com", "bob")
	prs := NewProfileService(db)

	// Case-insensitive substring match.
	profiles, err := prs.Search(domain.ProfileFilter{Nickname: "alice"})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "CoolAlice", profiles[0].Nickname)
	// The user account is preloaded for serialization.
	require.NotNil(t, profiles[0].User)

	// No filter returns everyone, in creation order.
	profiles, err = prs.Search(domain.ProfileFilter{})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "CoolAlice", profiles[0].Nickname)
}
