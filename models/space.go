package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visibility represents space visibility levels
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Space is a named container of one or more logical canvases, owned by
// a single tenant. A space always holds at least one canvas; the
// default canvas is created in the same transaction as the space.
type Space struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"size:2000;default:null"`
	Visibility  Visibility `json:"visibility" gorm:"type:varchar(20);default:'private'"`
	OwnerID     string     `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	SpaceCanvases []SpaceCanvas `json:"spaceCanvases,omitempty" gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Space model
func (Space) TableName() string {
	return "spaces"
}

// BeforeCreate assigns a fresh id when none is supplied. IDs are
// generated application-side so the schema works on databases without
// gen_random_uuid().
func (s *Space) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
