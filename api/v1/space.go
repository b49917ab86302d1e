package v1

import (
	"net/http"

	"github.com/canvaspace/dto"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
)

// SpaceController handles space-related API endpoints
type SpaceController struct {
	spaceService *services.SpaceService
}

// NewSpaceController creates a new space controller
func NewSpaceController(spaceService *services.SpaceService) *SpaceController {
	return &SpaceController{spaceService: spaceService}
}

// RegisterRoutes registers space routes on the owner-scoped group
func (c *SpaceController) RegisterRoutes(owners *gin.RouterGroup) {
	owners.DELETE("/:ownerId", c.DeleteOwner)

	spaces := owners.Group("/:ownerId/spaces")
	{
		spaces.GET("", c.ListSpaces)
		spaces.POST("", c.CreateSpace)
		spaces.GET("/:spaceId", c.GetSpace)
		spaces.PUT("/:spaceId", c.UpdateSpace)
		spaces.DELETE("/:spaceId", c.DeleteSpace)
	}
}

// ListSpaces retrieves the owner's spaces with canvas counts
func (c *SpaceController) ListSpaces(ctx *gin.Context) {
	response, err := c.spaceService.ListSpaces(ctx.Param("ownerId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// CreateSpace creates a space with its default canvas
func (c *SpaceController) CreateSpace(ctx *gin.Context) {
	var request dto.CreateSpaceRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.spaceService.CreateSpace(ctx.Param("ownerId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusCreated, response)
}

// GetSpace retrieves a space with its ordered canvas list
func (c *SpaceController) GetSpace(ctx *gin.Context) {
	response, err := c.spaceService.GetSpaceDetail(ctx.Param("ownerId"), ctx.Param("spaceId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// UpdateSpace edits a space's name and description
func (c *SpaceController) UpdateSpace(ctx *gin.Context) {
	var request dto.UpdateSpaceRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.spaceService.UpdateSpace(ctx.Param("ownerId"), ctx.Param("spaceId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// DeleteSpace purges a space and its orphaned canvases
func (c *SpaceController) DeleteSpace(ctx *gin.Context) {
	err := c.spaceService.DeleteSpace(ctx.Param("ownerId"), ctx.Param("spaceId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteOwner tears down every space of an owner
func (c *SpaceController) DeleteOwner(ctx *gin.Context) {
	err := c.spaceService.DeleteOwner(ctx.Param("ownerId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
