package dto

import (
	"encoding/json"
	"time"

	"github.com/canvaspace/models"
	"gorm.io/datatypes"
)

// CreateCanvasRequest represents the request payload for adding a new
// logical canvas to a space
type CreateCanvasRequest struct {
	Name     string          `json:"name" binding:"required"`
	FlowData json.RawMessage `json:"flowData"`
}

// UpdateCanvasRequest represents the editor save path: rename and/or
// replace the flow data of a version row. Pointer fields distinguish
// "not supplied" from zero values.
type UpdateCanvasRequest struct {
	Name     string          `json:"name"`
	FlowData json.RawMessage `json:"flowData"`
	Deployed *bool           `json:"deployed"`
	IsPublic *bool           `json:"isPublic"`
}

// CanvasOrder is one entry of a reorder request
type CanvasOrder struct {
	CanvasID  string `json:"canvasId" binding:"required"`
	SortOrder int    `json:"sortOrder" binding:"required,min=1"`
}

// ReorderCanvasesRequest represents the request payload for reordering
// the canvases of a space
type ReorderCanvasesRequest struct {
	CanvasOrders []CanvasOrder `json:"canvasOrders" binding:"required,min=1,dive"`
}

// CanvasResponse represents a canvas version row together with its
// position in the requesting space
type CanvasResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	FlowData       datatypes.JSON `json:"flowData"`
	Deployed       bool           `json:"deployed"`
	IsPublic       bool           `json:"isPublic"`
	VersionGroupID string         `json:"versionGroupId"`
	VersionUUID    string         `json:"versionUuid"`
	VersionLabel   string         `json:"versionLabel"`
	VersionIndex   int            `json:"versionIndex"`
	IsActive       bool           `json:"isActive"`
	SortOrder      int            `json:"sortOrder"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CanvasListResponse represents the ordered canvas list of a space
type CanvasListResponse struct {
	Canvases []CanvasResponse `json:"canvases"`
}

// NewCanvasResponse converts a canvas row and its sort order into the
// response shape.
func NewCanvasResponse(canvas models.Canvas, sortOrder int) CanvasResponse {
	return CanvasResponse{
		ID:             canvas.ID,
		Name:           canvas.Name,
		FlowData:       canvas.FlowData,
		Deployed:       canvas.Deployed,
		IsPublic:       canvas.IsPublic,
		VersionGroupID: canvas.VersionGroupID,
		VersionUUID:    canvas.VersionUUID,
		VersionLabel:   canvas.VersionLabel,
		VersionIndex:   canvas.VersionIndex,
		IsActive:       canvas.IsActive,
		SortOrder:      sortOrder,
		CreatedAt:      canvas.CreatedAt,
		UpdatedAt:      canvas.UpdatedAt,
	}
}
