// internal/models/shopping_list.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type ShoppingList struct {
	BaseModel
	Name    *string   `json:"name,omitempty" gorm:"size:255"`
	Date    time.Time `json:"date" gorm:"not null;index"`
	Done    bool      `json:"done" gorm:"default:false"`
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Owner       User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	SharedUsers []User        `json:"shared_users,omitempty" gorm:"many2many:shopping_list_shared_users;"`
	Products    []ListProduct `json:"products,omitempty" gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE"`
}

// SharedUserIDs returns the ids of the loaded shared users.
func (l *ShoppingList) SharedUserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(l.SharedUsers))
	for _, u := range l.SharedUsers {
		ids = append(ids, u.ID)
	}
	return ids
}
