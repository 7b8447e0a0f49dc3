// internal/services/aggregation.go
package services

import (
	"github.com/google/uuid"

	"github.com/javajoker/shoplist-backend/internal/models"
)

// PendingSeeds turns each pending source item into one seed for a new list.
// Items are expected pre-sorted by name; nothing is merged.
func PendingSeeds(items []models.ListProduct, ownerID uuid.UUID) []models.ListProduct {
	seeds := make([]models.ListProduct, 0, len(items))
	for _, item := range items {
		if item.Purchased {
			continue
		}
		seeds = append(seeds, seedFrom(item, item.Quantity, ownerID))
	}
	return seeds
}

// MergeByName collapses items sharing the exact same name. The first
// occurrence keeps its price, brand and market; later ones only add their
// quantity. Names are compared byte for byte.
func MergeByName(items []models.ListProduct, ownerID uuid.UUID) []models.ListProduct {
	seeds := make([]models.ListProduct, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		if i, ok := index[item.Name]; ok {
			seeds[i].Quantity += item.Quantity
			continue
		}
		index[item.Name] = len(seeds)
		seeds = append(seeds, seedFrom(item, item.Quantity, ownerID))
	}
	return seeds
}

func seedFrom(item models.ListProduct, quantity int, ownerID uuid.UUID) models.ListProduct {
	owner := ownerID
	return models.ListProduct{
		UserID:     &owner,
		Name:       item.Name,
		Quantity:   quantity,
		Price:      item.Price,
		Brand:      item.Brand,
		Market:     item.Market,
		ProductRef: item.ProductRef,
		Purchased:  false,
	}
}
