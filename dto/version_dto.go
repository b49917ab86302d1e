package dto

import (
	"time"

	"github.com/canvaspace/models"
)

// CreateVersionRequest represents the request payload for snapshotting
// a new canvas version
type CreateVersionRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Activate    bool   `json:"activate"`
}

// UpdateVersionRequest represents a pure metadata edit. Nil fields
// mean "leave unchanged"; a label cleared to "" falls back to the
// v{versionIndex} default.
type UpdateVersionRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
}

// VersionResponse represents a canvas version's metadata
type VersionResponse struct {
	ID                 string    `json:"id"`
	VersionGroupID     string    `json:"versionGroupId"`
	VersionUUID        string    `json:"versionUuid"`
	VersionLabel       string    `json:"versionLabel"`
	VersionDescription string    `json:"versionDescription"`
	VersionIndex       int       `json:"versionIndex"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

// VersionListResponse represents the version history of a canvas group
type VersionListResponse struct {
	Versions []VersionResponse `json:"versions"`
}

// NewVersionResponse converts a canvas row into its version metadata
// shape.
func NewVersionResponse(canvas models.Canvas) VersionResponse {
	return VersionResponse{
		ID:                 canvas.ID,
		VersionGroupID:     canvas.VersionGroupID,
		VersionUUID:        canvas.VersionUUID,
		VersionLabel:       canvas.VersionLabel,
		VersionDescription: canvas.VersionDescription,
		VersionIndex:       canvas.VersionIndex,
		IsActive:           canvas.IsActive,
		CreatedAt:          canvas.CreatedAt,
	}
}
