// Package testutil opens throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/shoplist-backend/internal/database"
	"github.com/javajoker/shoplist-backend/internal/models"
)

// OpenDB returns a migrated in-memory sqlite database. The pool is pinned to
// a single connection so every statement sees the same memory database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Item is a compact fixture for a line item.
type Item struct {
	Name      string
	Quantity  int
	Price     float64
	Purchased bool
}

func CreateList(t *testing.T, db *gorm.DB, owner *models.User, date time.Time, items ...Item) *models.ShoppingList {
	t.Helper()

	list := &models.ShoppingList{Date: date, OwnerID: owner.ID}
	require.NoError(t, db.Omit("Owner").Create(list).Error)

	for _, item := range items {
		product := &models.ListProduct{
			ShoppingListID: list.ID,
			UserID:         &owner.ID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Purchased:      item.Purchased,
		}
		require.NoError(t, db.Create(product).Error)
	}
	return list
}

func Share(t *testing.T, db *gorm.DB, list *models.ShoppingList, user *models.User) {
	t.Helper()
	require.NoError(t, db.Model(list).Association("SharedUsers").Append(user))
}

func ProductsOf(t *testing.T, db *gorm.DB, listID uuid.UUID) []models.ListProduct {
	t.Helper()

	var products []models.ListProduct
	require.NoError(t, db.Where("shopping_list_id = ?", listID).Order("name ASC").Find(&products).Error)
	return products
}
