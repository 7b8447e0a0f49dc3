// internal/models/list_product.go
package models

import (
	"github.com/google/uuid"
)

type ListProduct struct {
	BaseModel
	ShoppingListID uuid.UUID  `json:"shopping_list_id" gorm:"type:uuid;not null;index"`
	UserID         *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	Quantity       int        `json:"quantity" gorm:"default:0"`
	Price          float64    `json:"price" gorm:"type:decimal(10,2);default:0"`
	Brand          string     `json:"brand,omitempty" gorm:"size:255"`
	Market         string     `json:"market,omitempty" gorm:"size:255"`
	Purchased      bool       `json:"purchased" gorm:"default:false;index"`
	ProductRef     string     `json:"product_ref,omitempty" gorm:"size:255"`
}
