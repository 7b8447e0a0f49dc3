package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/shoplist-backend/internal/models"
)

// ProductCriteria selects line items across one or more lists.
type ProductCriteria struct {
	ShoppingListIDs []uuid.UUID
	PendingOnly     bool
	// ForUpdate locks the selected rows until the surrounding transaction
	// ends. Ignored by dialects without row locks.
	ForUpdate bool
}

type ListProductRepository interface {
	// Find returns the matching items ordered by name, then creation time.
	Find(ctx context.Context, criteria ProductCriteria) ([]models.ListProduct, error)
	// FindByID returns nil, nil when the item does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.ListProduct, error)
	Create(ctx context.Context, product *models.ListProduct) error
	Update(ctx context.Context, product *models.ListProduct, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeletePending deletes the given items that are still unpurchased and
	// reports how many rows went away.
	DeletePending(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type listProductRepo struct {
	db *gorm.DB
}

func (r *listProductRepo) Find(ctx context.Context, criteria ProductCriteria) ([]models.ListProduct, error) {
	products := []models.ListProduct{}
	if len(criteria.ShoppingListIDs) == 0 {
		return products, nil
	}

	query := r.db.WithContext(ctx).
		Where("shopping_list_id IN ?", criteria.ShoppingListIDs)

	if criteria.PendingOnly {
		query = query.Where("purchased = ?", false)
	}
	if criteria.ForUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.
		Order("name ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *listProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ListProduct, error) {
	var product models.ListProduct
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *listProductRepo) Create(ctx context.Context, product *models.ListProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *listProductRepo) Update(ctx context.Context, product *models.ListProduct, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ListProduct{}).
		Where("id = ?", product.ID).
		Updates(updates).Error
}

func (r *listProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ListProduct{}, "id = ?", id).Error
}

func (r *listProductRepo) DeletePending(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("id IN ? AND purchased = ?", ids, false).
		Delete(&models.ListProduct{})
	return result.RowsAffected, result.Error
}
