package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow and follower/following listings.
// Follow edges carry no denormalized counter; lists and counts are computed
// from the edges at read time.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:userId/follow", h.FollowUser)
	g.DELETE("/users/:userId/follow", h.UnfollowUser)
	g.GET("/users/:userId/follow", h.GetFollowers)
	g.GET("/users/:userId/following", h.GetFollowing)
}

func targetUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

// FollowUser creates a follow edge toward the target user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	followerID := middleware.UserID(c)

	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if targetID == followerID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	isFollowing, err := h.followRepository.IsFollowing(followerID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: targetID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// A concurrent follow created the edge first.
			return echo.NewHTTPError(http.StatusConflict, "Already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Followed successfully"})
}

// UnfollowUser deletes the follow edge toward the target user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	followerID := middleware.UserID(c)

	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(followerID, targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Follow relationship not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow user")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed successfully"})
}

// GetFollowers lists the users following the target, public fields joined in
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	followers, err := h.followRepository.GetFollowers(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch followers")
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists the users the target follows, public fields joined in
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, err := h.followRepository.GetFollowing(targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch following list")
	}
	return c.JSON(http.StatusOK, following)
}
