package v1

import (
	"net/http"

	"github.com/canvaspace/dto"
	"github.com/canvaspace/services"
	"github.com/gin-gonic/gin"
)

// VersionController handles canvas version endpoints
type VersionController struct {
	versionService *services.VersionService
}

// NewVersionController creates a new version controller
func NewVersionController(versionService *services.VersionService) *VersionController {
	return &VersionController{versionService: versionService}
}

// RegisterRoutes registers version routes on the owner-scoped group
func (c *VersionController) RegisterRoutes(owners *gin.RouterGroup) {
	versions := owners.Group("/:ownerId/spaces/:spaceId/canvases/:canvasId/versions")
	{
		versions.GET("", c.ListVersions)
		versions.POST("", c.CreateVersion)
		versions.POST("/:versionId/activate", c.ActivateVersion)
		versions.PUT("/:versionId", c.UpdateVersion)
		versions.DELETE("/:versionId", c.DeleteVersion)
	}
}

// ListVersions retrieves the version history of a canvas group
func (c *VersionController) ListVersions(ctx *gin.Context) {
	response, err := c.versionService.ListVersions(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// CreateVersion snapshots a new canvas version
func (c *VersionController) CreateVersion(ctx *gin.Context) {
	var request dto.CreateVersionRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.versionService.CreateVersion(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusCreated, response)
}

// ActivateVersion makes a version the live one for its group
func (c *VersionController) ActivateVersion(ctx *gin.Context) {
	response, err := c.versionService.ActivateVersion(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"), ctx.Param("versionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// UpdateVersion edits a version's label and description
func (c *VersionController) UpdateVersion(ctx *gin.Context) {
	var request dto.UpdateVersionRequest
	if !bindJSON(ctx, &request) {
		return
	}

	response, err := c.versionService.UpdateVersionMetadata(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"), ctx.Param("versionId"), request)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, response)
}

// DeleteVersion removes a non-active, non-sole version row
func (c *VersionController) DeleteVersion(ctx *gin.Context) {
	err := c.versionService.DeleteVersion(ctx.Param("ownerId"), ctx.Param("spaceId"), ctx.Param("canvasId"), ctx.Param("versionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondData(ctx, http.StatusOK, gin.H{"deleted": true})
}
