package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/services"
)

func item(name string, qty int, price float64, purchased bool) models.ListProduct {
	p := models.ListProduct{Name: name, Quantity: qty, Price: price, Purchased: purchased}
	p.ID = uuid.New()
	return p
}

func TestPendingSeedsKeepsEveryPendingItem(t *testing.T) {
	owner := uuid.New()
	seeds := services.PendingSeeds([]models.ListProduct{
		item("eggs", 1, 2.5, true),
		item("milk", 2, 1.2, false),
		item("milk", 1, 1.4, false),
	}, owner)

	require.Len(t, seeds, 2)
	for _, s := range seeds {
		assert.Equal(t, "milk", s.Name)
		assert.Equal(t, uuid.Nil, s.ID)
		assert.False(t, s.Purchased)
		assert.Equal(t, owner, *s.UserID)
	}
	assert.Equal(t, 2, seeds[0].Quantity)
	assert.Equal(t, 1, seeds[1].Quantity)
}

func TestMergeByNameSumsQuantities(t *testing.T) {
	owner := uuid.New()
	first := item("bread", 1, 3.0, true)
	first.Brand = "Bakery"

	second := item("bread", 2, 9.9, false)
	second.Brand = "Other"

	seeds := services.MergeByName([]models.ListProduct{
		first,
		item("Bread", 4, 1.0, false),
		second,
		item("milk", 5, 1.0, false),
	}, owner)

	require.Len(t, seeds, 3)
	assert.Equal(t, "bread", seeds[0].Name)
	assert.Equal(t, 3, seeds[0].Quantity)
	assert.Equal(t, 3.0, seeds[0].Price)
	assert.Equal(t, "Bakery", seeds[0].Brand)
	assert.False(t, seeds[0].Purchased)

	// Matching is case sensitive.
	assert.Equal(t, "Bread", seeds[1].Name)
	assert.Equal(t, "milk", seeds[2].Name)
}

func TestAggregationOfNothing(t *testing.T) {
	assert.Empty(t, services.PendingSeeds(nil, uuid.New()))
	assert.Empty(t, services.MergeByName(nil, uuid.New()))
}
