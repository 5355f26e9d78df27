package crud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func TestCreateTag(t *testing.T) {
	db := testDB(t)
	ts := NewTagService(db)

	require.NoError(t, ts.Create(&domain.Tag{Name: "space"}))

	err := ts.Create(&domain.Tag{Name: "  "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = ts.Create(&domain.Tag{Name: strings.Repeat("x", 64)})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestTagByIDs(t *testing.T) {
	db := testDB(t)
	ts := NewTagService(db)

	space := seedTag(t, db, "space")
	tech := seedTag(t, db, "tech")

	tags, err := ts.ByIDs([]int{space.ID, tech.ID})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	_, err = ts.ByIDs([]int{space.ID, 9999})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	tags, err = ts.ByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagAll(t *testing.T) {
	db := testDB(t)
	ts := NewTagService(db)

	seedTag(t, db, "space")
	seedTag(t, db, "tech")

	tags, err := ts.All()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "space", tags[0].Name)
	assert.Equal(t, "tech", tags[1].Name)
}
