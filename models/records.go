package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Child records attached to a canvas version. They are written by
// other services; this engine only ever deletes them when their canvas
// is purged.

// ChatMessage is a single chat turn recorded against a canvas.
type ChatMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CanvasID  string    `json:"canvasId" gorm:"type:uuid;not null;index"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	SessionID string    `json:"sessionId" gorm:"default:null;index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Feedback is a user rating on a chat message of a canvas.
type Feedback struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CanvasID  string    `json:"canvasId" gorm:"type:uuid;not null;index"`
	MessageID string    `json:"messageId" gorm:"type:uuid;default:null"`
	Rating    string    `json:"rating" gorm:"type:varchar(20)"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// UpsertHistory records a vector-store upsert run for a canvas.
type UpsertHistory struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	CanvasID  string         `json:"canvasId" gorm:"type:uuid;not null;index"`
	Result    datatypes.JSON `json:"result" gorm:"type:jsonb"`
	FlowData  datatypes.JSON `json:"flowData" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (UpsertHistory) TableName() string { return "upsert_history" }

func (u *UpsertHistory) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Lead is a contact captured through a published canvas.
type Lead struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CanvasID  string    `json:"canvasId" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"default:null"`
	Email     string    `json:"email" gorm:"default:null"`
	Phone     string    `json:"phone" gorm:"default:null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
