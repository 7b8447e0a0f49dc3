package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/javajoker/shoplist-backend/internal/models"
)

const sharedUsersTable = "shopping_list_shared_users"

type ShoppingListRepository interface {
	// FindAll returns every list with owner, shared users and products loaded,
	// newest date first.
	FindAll(ctx context.Context) ([]models.ShoppingList, error)
	// FindAllByUser returns the lists owned by or shared with userID in one
	// query, newest date first.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error)
	// FindByID returns nil, nil when the list does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error)
	// FindByIDForUser returns nil, nil when the list does not exist or userID
	// is neither its owner nor a shared user.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error)
	// Create inserts the list together with its Products.
	Create(ctx context.Context, list *models.ShoppingList) error
	Update(ctx context.Context, list *models.ShoppingList, updates map[string]interface{}) error
	AddSharedUser(ctx context.Context, list *models.ShoppingList, user *models.User) error
	RemoveSharedUser(ctx context.Context, list *models.ShoppingList, user *models.User) error
	// Delete removes the list, its share rows and its products.
	Delete(ctx context.Context, id uuid.UUID) error
}

type shoppingListRepo struct {
	db *gorm.DB
}

func (r *shoppingListRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("SharedUsers").
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_products.name ASC").Order("list_products.created_at ASC")
		})
}

// memberOf restricts a list query to lists userID owns or is shared on.
func (r *shoppingListRepo) memberOf(query *gorm.DB, userID uuid.UUID) *gorm.DB {
	shared := r.db.Session(&gorm.Session{NewDB: true}).
		Table(sharedUsersTable).
		Select("shopping_list_id").
		Where("user_id = ?", userID)

	return query.Where("shopping_lists.owner_id = ? OR shopping_lists.id IN (?)", userID, shared)
}

func (r *shoppingListRepo) FindAll(ctx context.Context) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := r.withRelations(ctx).
		Order("shopping_lists.date DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *shoppingListRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	if err := r.memberOf(r.withRelations(ctx), userID).
		Order("shopping_lists.date DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *shoppingListRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := r.withRelations(ctx).
		Where("shopping_lists.id = ?", id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *shoppingListRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := r.memberOf(r.withRelations(ctx), userID).
		Where("shopping_lists.id = ?", id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *shoppingListRepo) Create(ctx context.Context, list *models.ShoppingList) error {
	return r.db.WithContext(ctx).Omit("Owner", "SharedUsers").Create(list).Error
}

func (r *shoppingListRepo) Update(ctx context.Context, list *models.ShoppingList, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	// Updating through a bare model keeps loaded associations out of the
	// statement.
	return r.db.WithContext(ctx).
		Model(&models.ShoppingList{}).
		Where("id = ?", list.ID).
		Updates(updates).Error
}

func (r *shoppingListRepo) AddSharedUser(ctx context.Context, list *models.ShoppingList, user *models.User) error {
	return r.db.WithContext(ctx).Model(list).Association("SharedUsers").Append(user)
}

func (r *shoppingListRepo) RemoveSharedUser(ctx context.Context, list *models.ShoppingList, user *models.User) error {
	return r.db.WithContext(ctx).Model(list).Association("SharedUsers").Delete(user)
}

func (r *shoppingListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Exec("DELETE FROM "+sharedUsersTable+" WHERE shopping_list_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Where("shopping_list_id = ?", id).Delete(&models.ListProduct{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.ShoppingList{}, "id = ?", id).Error
}
