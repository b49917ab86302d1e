package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpaceCanvas binds a space to the currently-active version of a
// logical canvas and carries its display order. VersionGroupID is a
// deliberate denormalized copy of the pointed-to canvas's group: it
// lets activation re-point CanvasID for a whole group without touching
// the sort bookkeeping. At most one row exists per
// (space_id, version_group_id); sort orders are contiguous 1..N within
// a space at rest.
type SpaceCanvas struct {
	ID             string `json:"id" gorm:"primaryKey;type:uuid"`
	SpaceID        string `json:"spaceId" gorm:"type:uuid;not null;uniqueIndex:uniq_space_group,priority:1;uniqueIndex:uniq_space_sort,priority:1"`
	CanvasID       string `json:"canvasId" gorm:"type:uuid;not null;index"`
	VersionGroupID string `json:"versionGroupId" gorm:"type:uuid;not null;uniqueIndex:uniq_space_group,priority:2;index"`
	SortOrder      int    `json:"sortOrder" gorm:"not null;uniqueIndex:uniq_space_sort,priority:2"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Space  Space  `json:"space,omitempty" gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE"`
	Canvas Canvas `json:"canvas,omitempty" gorm:"foreignKey:CanvasID"`
}

// TableName sets the table name for SpaceCanvas model
func (SpaceCanvas) TableName() string {
	return "space_canvases"
}

// BeforeCreate assigns a fresh id when none is supplied.
func (sc *SpaceCanvas) BeforeCreate(tx *gorm.DB) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	return nil
}
