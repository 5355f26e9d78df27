package crud

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfSocial/domain"
)

// testDB opens a throwaway sqlite-backed gorm connection for a single test
// and migrates the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Profile{},
		domain.Tag{},
		domain.Post{},
		domain.Follow{},
		domain.BlacklistedToken{},
	))
	return db
}

// seedUser creates a user account with a profile and returns both.
func seedUser(t *testing.T, db *gorm.DB, email, nickname string) (*domain.User, *domain.Profile) {
	t.Helper()
	user := &domain.User{Email: email, Password: "password"}
	require.NoError(t, NewUserService(db, "pepper").Create(user))
	profile := &domain.Profile{UserID: user.ID, Nickname: nickname}
	require.NoError(t, NewProfileService(db).Create(profile))
	return user, profile
}

// seedTag creates a tag.
func seedTag(t *testing.T, db *gorm.DB, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name}
	require.NoError(t, NewTagService(db).Create(tag))
	return tag
}

// seedPost creates a post by the given author, associated with the given tags.
func seedPost(t *testing.T, db *gorm.DB, author *domain.User, title string, tagIDs ...int) *domain.Post {
	t.Helper()
	post := &domain.Post{AuthorID: author.ID, Title: title, Text: "some text"}
	require.NoError(t, NewPostService(db).Create(post, tagIDs))
	return post
}
