package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/services"
	"github.com/taskhub/task-tracker-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users, filtered by the optional `q` query
// parameter (case-insensitive substring of the name).
func (h *UserHandler) ListUsers(c *gin.Context) {
	searchTerm := c.Query("q")
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(searchTerm, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		ID       string `json:"id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			apierrors.BadRequest(c, validationErr.Error())
		case errors.Is(err, services.ErrUserIDTaken):
			apierrors.Conflict(c, "User id already exists")
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, "Email already exists")
		default:
			apierrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// DeleteUser deletes a user by ID. Task assignments referencing the user
// are left untouched.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.userService.Delete(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
