package v1

import (
	"github.com/canvaspace/middleware"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the constructed API controllers.
type Controllers struct {
	Auth    *AuthController
	Space   *SpaceController
	Canvas  *CanvasController
	Version *VersionController
}

// NewControllers wires controllers over the given services.
func NewControllers(
	authService *services.AuthService,
	spaceService *services.SpaceService,
	canvasService *services.CanvasService,
	versionService *services.VersionService,
) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(authService),
		Space:   NewSpaceController(spaceService),
		Canvas:  NewCanvasController(canvasService),
		Version: NewVersionController(versionService),
	}
}

// RegisterRoutes registers all v1 API routes
func (c *Controllers) RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", c.Auth.Register)
		authGroup.POST("/login", c.Auth.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), c.Auth.GetCurrentUser)
	}

	// Owner-scoped endpoints - protected by AuthMiddleware
	owners := router.Group("/owners")
	owners.Use(middleware.AuthMiddleware())
	c.Space.RegisterRoutes(owners)
	c.Canvas.RegisterRoutes(owners)
	c.Version.RegisterRoutes(owners)
}
