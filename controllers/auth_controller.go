package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/middleware"
	"github.com/blissorganic/storefront/models"
)

// Struct to represent the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Struct for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// Login authenticates against the user or admin endpoint depending on
// the requested role.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	sess, err := middleware.GetSession(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	result := sess.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": result.Error})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": result.User})
}

// Register creates a new ordinary-user account.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	sess, err := middleware.GetSession(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	result := sess.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": result.Error})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": result.User})
}

// Logout clears the session; it always succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	sess.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session exposes the current session state to the frontend.
func (ac *AuthController) Session(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":             sess.User(),
		"loading":          sess.Loading(),
		"is_authenticated": sess.IsAuthenticated(),
		"is_admin":         sess.IsAdmin(),
	})
}
