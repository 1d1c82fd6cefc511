package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/storage"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	images         storage.ImageStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, images storage.ImageStore) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		images:         images,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts/create", h.CreatePost)
	g.GET("/posts/:postId", h.GetPost)
	g.PATCH("/posts/:postId", h.UpdatePost)
	g.DELETE("/posts/:postId", h.DeletePost)
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// ListPosts returns posts newest first with pagination metadata
func (h *PostHandler) ListPosts(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	skip := int64(page-1) * int64(limit)
	posts, total, err := h.postRepository.GetPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(http.StatusOK, echo.Map{
		"posts":      posts,
		"page":       page,
		"limit":      limit,
		"totalPosts": total,
		"totalPages": totalPages,
	})
}

// CreatePost creates a post from a multipart form with a caption and image
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	caption := strings.TrimSpace(c.FormValue("caption"))
	fileHeader, ferr := c.FormFile("image")
	if caption == "" || ferr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Caption and image are required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
	}
	defer src.Close()

	url, err := h.images.Upload(c.Request().Context(), "posts", fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	post := &models.Post{
		UserID:   userID,
		Caption:  caption,
		ImageURL: url,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetPost returns a single post by id
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// UpdatePost updates a post's caption and/or image
func (h *PostHandler) UpdatePost(c echo.Context) error {
	caption := strings.TrimSpace(c.FormValue("caption"))
	fileHeader, ferr := c.FormFile("image")
	if caption == "" && ferr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one field (caption or image) must be provided")
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	if caption != "" {
		post.Caption = caption
	}
	if ferr == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
		}
		defer src.Close()

		url, err := h.images.Upload(ctx, "posts", fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
		}
		post.ImageURL = url
	}

	if err := h.postRepository.UpdatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// DeletePost removes a post and, best-effort, its hosted image
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID := c.Param("postId")
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch post")
	}

	if post.ImageURL != "" {
		if err := h.images.Delete(ctx, post.ImageURL); err != nil {
			// The post is still deleted; an orphaned object is acceptable.
			log.Printf("Failed to delete image for post %s: %v", postID, err)
		}
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
