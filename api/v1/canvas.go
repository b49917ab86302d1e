package v1

import (
	"net/http"

	"github.com/canvaspace/dto"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
)

// CanvasController handles the canvas membership endpoints of a space
type CanvasController struct {
	canvasService *services.CanvasService
}

// NewCanvasController creates a new canvas controller
func NewCanvasController(canvasService *services.CanvasService) *CanvasController {
	return &CanvasController{canvasService: canvasService}
}

// RegisterRoutes registers canvas routes on the owner-scoped group
func (c *CanvasController) RegisterRoutes(owners *gin.RouterGroup) {
	canvases := owners.Group("/:ownerId/spaces/:spaceId/canvases")
	{
		canvases.GET("", c.ListCanvases)
		canvases.POST("", c.CreateCanvas)
		canvases.PUT("/reorder", c.ReorderCanvases)
		canvases.PUT("/:canvasId", c.UpdateCanvas)
		canvases.DELETE("/:canvasId", c.DeleteCanvas)
	}
}

// ListCanvases retrieves the canvases of a space in display order
func (c *CanvasController) ListCanvases(ctx *gin.Context) {
	response, err := c.canvasService.ListCanvases(ctx.Param("ownerId"), ctx.Param("spaceId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// CreateCanvas adds a new logical canvas to a space
func (c *CanvasController) CreateCanvas(ctx *gin.Context) {
	var request dto.CreateCanvasRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.canvasService.CreateCanvasInSpace(ctx.Param("ownerId"), ctx.Param("spaceId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusCreated, response)
}

// UpdateCanvas renames a canvas or replaces its flow data
func (c *CanvasController) UpdateCanvas(ctx *gin.Context) {
	var request dto.UpdateCanvasRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.canvasService.UpdateCanvas(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// ReorderCanvases rewrites the display order of a space's canvases
func (c *CanvasController) ReorderCanvases(ctx *gin.Context) {
	var request dto.ReorderCanvasesRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.canvasService.ReorderCanvases(ctx.Param("ownerId"), ctx.Param("spaceId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// DeleteCanvas removes a logical canvas and its whole version group
// from a space
func (c *CanvasController) DeleteCanvas(ctx *gin.Context) {
	err := c.canvasService.DeleteCanvasFromSpace(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
