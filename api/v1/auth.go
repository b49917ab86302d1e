package v1

import (
	"net/http"

	"github.com/canvaspace/dto"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles registration, login and profile endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusCreated, user)
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	authResponse, err := c.authService.Login(req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": err.Error()},
		})
		return
	}

	// Set token as HttpOnly cookie for browser clients; the response
	// body carries it for Bearer clients.
	ctx.SetCookie("access_token", authResponse.Token, 86400, "/", "", true, true)

	respondData(ctx, http.StatusOK, authResponse)
}

// GetCurrentUser returns the currently authenticated user's profile
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	userID, exists := ctx.Get("userId")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "user not authenticated"},
		})
		return
	}

	user, err := c.authService.GetUser(userID.(string))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, user)
}
