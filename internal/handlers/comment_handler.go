package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:postId/comments", h.GetComments)
	g.POST("/posts/:postId/comments/create", h.CreateComment)
}

// CreateComment adds a comment to a post and bumps the post's denormalized
// comment counter.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := middleware.UserID(c)
	postID := c.Param("postId")
	ctx := c.Request().Context()

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment")
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment")
	}

	// The comment row is the source of truth; a failed counter bump is
	// recoverable drift, not a failed request.
	if err := h.postRepository.IncrementComments(ctx, postID); err != nil {
		log.Printf("Failed to bump comment count for post %s: %v", postID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// GetComments lists a post's comments newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("postId")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}
