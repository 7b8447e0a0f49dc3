// internal/models/user.go
package models

type User struct {
	BaseModel
	Username string `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email    string `json:"email,omitempty" gorm:"uniqueIndex;size:255;not null"`
	IsAdmin  bool   `json:"is_admin" gorm:"default:false"`

	// Relationships
	ShoppingLists []ShoppingList `json:"shopping_lists,omitempty" gorm:"foreignKey:OwnerID"`
}
