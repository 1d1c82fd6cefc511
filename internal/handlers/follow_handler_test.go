package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followFixture struct {
	users   *fakeUserRepo
	follows *fakeFollowRepo
	handler *FollowHandler
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()

	users := newFakeUserRepo()
	require.NoError(t, users.CreateUser(&models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, users.CreateUser(&models.User{Name: "Bob", Email: "bob@example.com"}))

	follows := newFakeFollowRepo(users)
	return &followFixture{
		users:   users,
		follows: follows,
		handler: NewFollowHandler(follows, users),
	}
}

func (f *followFixture) invoke(t *testing.T, method, userIDParam string, callerID uint, fn echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := newEcho()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(userIDParam)
	c.Set(middleware.UserIDKey, callerID)

	return rec, fn(c)
}

func TestFollowUser_Success(t *testing.T) {
	f := newFollowFixture(t)

	rec, err := f.invoke(t, http.MethodPost, "2", 1, f.handler.FollowUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	following, err := f.follows.IsFollowing(1, 2)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowUser_AlreadyFollowing(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.invoke(t, http.MethodPost, "2", 1, f.handler.FollowUser)
	require.NoError(t, err)

	_, err = f.invoke(t, http.MethodPost, "2", 1, f.handler.FollowUser)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Equal(t, "Already following this user", httpErr.Message)

	// the edge stays single
	assert.Len(t, f.follows.edges, 1)
}

func TestFollowUser_Self(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.invoke(t, http.MethodPost, "1", 1, f.handler.FollowUser)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "Cannot follow yourself", httpErr.Message)
}

func TestFollowUser_TargetMissing(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.invoke(t, http.MethodPost, "99", 1, f.handler.FollowUser)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "User not found", httpErr.Message)
}

func TestFollowUser_InvalidID(t *testing.T) {
	f := newFollowFixture(t)

	for _, param := range []string{"abc", "0", "-3"} {
		_, err := f.invoke(t, http.MethodPost, param, 1, f.handler.FollowUser)
		require.Error(t, err, "param %q", param)

		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
}

func TestUnfollowUser_ThenNotFound(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.invoke(t, http.MethodPost, "2", 1, f.handler.FollowUser)
	require.NoError(t, err)

	rec, err := f.invoke(t, http.MethodDelete, "2", 1, f.handler.UnfollowUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = f.invoke(t, http.MethodDelete, "2", 1, f.handler.UnfollowUser)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "Follow relationship not found", httpErr.Message)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.invoke(t, http.MethodPost, "2", 1, f.handler.FollowUser)
	require.NoError(t, err)

	rec, err := f.invoke(t, http.MethodGet, "2", 2, f.handler.GetFollowers)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var followers []models.FollowEdge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &followers))
	require.Len(t, followers, 1)
	assert.Equal(t, uint(1), followers[0].User.ID)
	assert.Equal(t, "Alice", followers[0].User.Name)

	rec, err = f.invoke(t, http.MethodGet, "1", 1, f.handler.GetFollowing)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var following []models.FollowEdge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &following))
	require.Len(t, following, 1)
	assert.Equal(t, uint(2), following[0].User.ID)
	assert.Equal(t, "Bob", following[0].User.Name)

	// Bob follows nobody
	rec, err = f.invoke(t, http.MethodGet, "2", 2, f.handler.GetFollowing)
	require.NoError(t, err)
	var empty []models.FollowEdge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Empty(t, empty)
}
