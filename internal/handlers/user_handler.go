package handlers

import (
	"errors"
	"net/http"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/middleware"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/models"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/repositories"
	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/storage"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository repositories.UserRepository
	images         storage.ImageStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, images storage.ImageStore) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		images:         images,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.POST("/users/profile-photo", h.UploadProfilePhoto)
	g.GET("/users/:userId", h.GetUser)
	g.PATCH("/users/:userId", h.UpdateUser)
	g.DELETE("/users/:userId", h.DeleteUser)
}

// ListUsers returns all users, passwords excluded
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a user by id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already in use")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user by id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := targetUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userRepository.DeleteUser(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// UploadProfilePhoto stores a new profile photo for the authenticated user
// and persists its URL.
func (h *UserHandler) UploadProfilePhoto(c echo.Context) error {
	userID := middleware.UserID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image")
	}
	defer src.Close()

	url, err := h.images.Upload(c.Request().Context(), "profile-photos", fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload profile photo")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile photo")
	}

	user.Image = url
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile photo")
	}
	return c.JSON(http.StatusOK, user)
}
