package handlers

import (
	"errors"
	"net/http"

	"github.com/TatyanaDev/task-management-api/internal/dto"
	apierrors "github.com/TatyanaDev/task-management-api/internal/errors"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns a token.
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	map[string]dto.TokenDTO
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string          `json:"email" binding:"required,email"`
		Password string          `json:"password" binding:"required,min=6"`
		Role     models.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		apierrors.Internal(c, "Error register user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.TokenDTO{Token: token}})
}

// Login authenticates a user and returns a token.
//
//	@Summary	Log a user in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	map[string]dto.TokenDTO
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Authentication failed")
			return
		}
		apierrors.Internal(c, "Error log a user in", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TokenDTO{Token: token}})
}
