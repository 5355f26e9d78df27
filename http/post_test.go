package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/errs"
)

func TestParseTagIDs(t *testing.T) {
	ids, err := parseTagIDs("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parseTagIDs("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	ids, err = parseTagIDs(" 1 , 2 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids)

	_, err = parseTagIDs("1,abc")
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	_, err = parseTagIDs(",")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts", nil)
	page, pageSize, err := parsePagination(r)
	require.NoError(t, err)
	assert.Zero(t, page)
	assert.Zero(t, pageSize)

	r = httptest.NewRequest("GET", "/posts?page=2&page_size=25", nil)
	page, pageSize, err = parsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, pageSize)

	r = httptest.NewRequest("GET", "/posts?page=x", nil)
	_, _, err = parsePagination(r)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	r = httptest.NewRequest("GET", "/posts?page_size=-1", nil)
	_, _, err = parsePagination(r)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}
