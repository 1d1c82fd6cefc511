package handlers

import (
	"errors"
	"net/http"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler toggles like edges and keeps the post's denormalized counter
// in step. The likes table is the source of truth; the counter on the post
// document is a cached aggregate mutated with atomic increments, so a crash
// between the two writes leaves a recoverable drift, never a corrupt count.
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:postId/like", h.ToggleLike)
}

// ToggleLike creates the like edge if absent and removes it if present.
// 201 on like, 200 on unlike; both carry the post's new like count.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := middleware.UserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid postId")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	liked, err := h.likeRepository.HasUserLikedPost(postID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up like")
	}

	if liked {
		err := h.likeRepository.DeleteLike(postID, userID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unlike post")
		}
		likes, err := h.postRepository.DecrementLikes(ctx, postID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update like count")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Post unliked successfully",
			"likes":   likes,
		})
	}

	if err := h.likeRepository.CreateLike(&models.Like{PostID: postID, UserID: userID}); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// A concurrent toggle won the insert and its increment already
			// happened; report the current count instead of bumping twice.
			post, gerr := h.postRepository.GetPostByID(ctx, postID)
			if gerr != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
			}
			return c.JSON(http.StatusCreated, echo.Map{
				"message": "Post liked successfully",
				"likes":   post.LikesCount,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like post")
	}

	likes, err := h.postRepository.IncrementLikes(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update like count")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post liked successfully",
		"likes":   likes,
	})
}
