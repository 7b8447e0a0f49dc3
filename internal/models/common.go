// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the id on the application side so the same models
// migrate on PostgreSQL and sqlite.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type ListEventType string

const (
	ListEventCreated  ListEventType = "list.created"
	ListEventUpdated  ListEventType = "list.updated"
	ListEventDeleted  ListEventType = "list.deleted"
	ListEventShared   ListEventType = "list.shared"
	ListEventUnshared ListEventType = "list.unshared"
	ListEventDerived  ListEventType = "list.derived"
)
