package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/shoplist-backend/internal/database"
	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/testutil"
)

func countUsers(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestWithTransactionCommits(t *testing.T) {
	db := testutil.OpenDB(t)

	err := database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&models.User{Username: "ana", Email: "ana@example.com"}).Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countUsers(t, db))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := testutil.OpenDB(t)
	boom := errors.New("boom")

	err := database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Username: "ana", Email: "ana@example.com"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db := testutil.OpenDB(t)

	assert.Panics(t, func() {
		_ = database.WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
			tx.Create(&models.User{Username: "ana", Email: "ana@example.com"})
			panic("unexpected")
		})
	})
	assert.Equal(t, int64(0), countUsers(t, db))
}

func TestSeedInitialData(t *testing.T) {
	db := testutil.OpenDB(t)
	db.Logger = logger.Default.LogMode(logger.Silent)

	require.NoError(t, database.SeedInitialData(db))
	require.NoError(t, database.SeedInitialData(db))

	assert.Equal(t, int64(2), countUsers(t, db))

	var list models.ShoppingList
	require.NoError(t, db.Preload("SharedUsers").Preload("Products").First(&list).Error)
	assert.Len(t, list.SharedUsers, 1)
	assert.Len(t, list.Products, 2)
}

func TestPing(t *testing.T) {
	db := testutil.OpenDB(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}
