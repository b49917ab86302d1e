package dto

import (
	"encoding/json"
	"time"

	"github.com/canvaspace/models"
)

// CreateSpaceRequest represents the request payload for creating a new
// space. The default canvas fields seed the space's first canvas.
type CreateSpaceRequest struct {
	Name                  string          `json:"name" binding:"required"`
	Description           string          `json:"description"`
	DefaultCanvasName     string          `json:"defaultCanvasName"`
	DefaultCanvasFlowData json.RawMessage `json:"defaultCanvasFlowData"`
}

// UpdateSpaceRequest represents the request payload for updating a space
type UpdateSpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SpaceSummary represents a space in the owner's space list
type SpaceSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Visibility  string    `json:"visibility"`
	CanvasCount int64     `json:"canvasCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpaceListResponse represents the space list payload
type SpaceListResponse struct {
	Spaces []SpaceSummary `json:"spaces"`
}

// SpaceDetail represents a space with its ordered canvases
type SpaceDetail struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Visibility    string           `json:"visibility"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Canvases      []CanvasResponse `json:"canvases"`
	DefaultCanvas *CanvasResponse  `json:"defaultCanvas,omitempty"`
}

// NewSpaceSummary converts a space row and its canvas count into the
// summary shape.
func NewSpaceSummary(space models.Space, canvasCount int64) SpaceSummary {
	return SpaceSummary{
		ID:          space.ID,
		Name:        space.Name,
		Description: space.Description,
		Visibility:  string(space.Visibility),
		CanvasCount: canvasCount,
		CreatedAt:   space.CreatedAt,
		UpdatedAt:   space.UpdatedAt,
	}
}

// NewSpaceDetail converts a space and its ordered canvases into the
// detail shape.
func NewSpaceDetail(space models.Space, canvases []CanvasResponse) SpaceDetail {
	return SpaceDetail{
		ID:          space.ID,
		Name:        space.Name,
		Description: space.Description,
		Visibility:  string(space.Visibility),
		CreatedAt:   space.CreatedAt,
		UpdatedAt:   space.UpdatedAt,
		Canvases:    canvases,
	}
}
