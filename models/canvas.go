package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Canvas is a single immutable version row of a logical flow graph.
// All rows sharing a VersionGroupID form one logical canvas; at most
// one row per group has IsActive = true, and in steady state exactly
// one. VersionIndex is a monotonic counter per group (gaps are allowed
// after deletes), guarded by the unique index on
// (version_group_id, version_index).
type Canvas struct {
	ID       string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name     string         `json:"name" gorm:"size:200;not null"`
	FlowData datatypes.JSON `json:"flowData" gorm:"type:jsonb"`

	// Deployment/config fields, opaque to the versioning engine.
	Deployed      bool           `json:"deployed" gorm:"default:false"`
	IsPublic      bool           `json:"isPublic" gorm:"default:false"`
	APIConfig     datatypes.JSON `json:"apiConfig" gorm:"type:jsonb"`
	ChatbotConfig datatypes.JSON `json:"chatbotConfig" gorm:"type:jsonb"`
	Category      string         `json:"category" gorm:"default:null"`

	// Versioning quadruple.
	VersionGroupID     string `json:"versionGroupId" gorm:"type:uuid;not null;uniqueIndex:uniq_canvas_group_index,priority:1;index:idx_canvas_group_active,priority:1"`
	VersionUUID        string `json:"versionUuid" gorm:"type:uuid;not null;uniqueIndex"`
	VersionLabel       string `json:"versionLabel" gorm:"size:200;not null"`
	VersionDescription string `json:"versionDescription" gorm:"size:2000;default:null"`
	VersionIndex       int    `json:"versionIndex" gorm:"not null;uniqueIndex:uniq_canvas_group_index,priority:2"`
	IsActive           bool   `json:"isActive" gorm:"not null;default:false;index:idx_canvas_group_active,priority:2"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Canvas model
func (Canvas) TableName() string {
	return "canvases"
}

// BeforeCreate assigns fresh identifiers when none are supplied.
func (c *Canvas) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.VersionGroupID == "" {
		c.VersionGroupID = uuid.NewString()
	}
	if c.VersionUUID == "" {
		c.VersionUUID = uuid.NewString()
	}
	return nil
}
