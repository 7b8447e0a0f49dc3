// internal/database/connection.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/shoplist-backend/internal/config"
	"github.com/javajoker/shoplist-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

// Ping checks the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.ShoppingList{},
		&models.ListProduct{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_shopping_lists_owner_date ON shopping_lists(owner_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_shared_users_user ON shopping_list_shared_users(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_list_products_list_name ON list_products(shopping_list_id, name)",
		"CREATE INDEX IF NOT EXISTS idx_list_products_list_purchased ON list_products(shopping_list_id, purchased)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData creates a demo household so a fresh development database
// has something to list.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		logrus.Info("Database already seeded, skipping")
		return nil
	}

	return WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		admin := &models.User{Username: "admin", Email: "admin@shoplist.local", IsAdmin: true}
		partner := &models.User{Username: "partner", Email: "partner@shoplist.local"}
		users := []*models.User{admin, partner}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to create demo users: %w", err)
		}

		name := "Weekly groceries"
		list := &models.ShoppingList{
			Name:    &name,
			Date:    time.Now(),
			OwnerID: admin.ID,
			Products: []models.ListProduct{
				{Name: "bread", Quantity: 1, Price: 2.5, UserID: &admin.ID},
				{Name: "milk", Quantity: 2, Price: 1.2, UserID: &admin.ID},
			},
		}
		if err := tx.Omit("Owner").Create(list).Error; err != nil {
			return fmt.Errorf("failed to create demo shopping list: %w", err)
		}

		if err := tx.Model(list).Association("SharedUsers").Append(partner); err != nil {
			return fmt.Errorf("failed to share demo shopping list: %w", err)
		}

		logrus.Info("Initial data seeding completed")
		return nil
	})
}

// WithTransaction runs fn inside a transaction bound to ctx. The transaction
// commits when fn returns nil and rolls back on error or panic.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logrus.WithError(rbErr).Warn("Transaction rollback failed")
		}
		return err
	}

	return tx.Commit().Error
}
