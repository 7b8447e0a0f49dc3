// internal/services/list_product_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type ListProductService struct {
	gateway  repository.Gateway
	notifier Notifier
}

type CreateListProductRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Brand      string  `json:"brand,omitempty" validate:"max=255"`
	Market     string  `json:"market,omitempty" validate:"max=255"`
	Purchased  bool    `json:"purchased"`
	ProductRef string  `json:"product_ref,omitempty" validate:"max=255"`
}

type UpdateListProductRequest struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Quantity   *int     `json:"quantity,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Brand      *string  `json:"brand,omitempty" validate:"omitempty,max=255"`
	Market     *string  `json:"market,omitempty" validate:"omitempty,max=255"`
	Purchased  *bool    `json:"purchased,omitempty"`
	ProductRef *string  `json:"product_ref,omitempty" validate:"omitempty,max=255"`
}

func (r *CreateListProductRequest) toModel(userID uuid.UUID) models.ListProduct {
	return models.ListProduct{
		UserID:     &userID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Brand:      r.Brand,
		Market:     r.Market,
		Purchased:  r.Purchased,
		ProductRef: r.ProductRef,
	}
}

func NewListProductService(gateway repository.Gateway, notifier Notifier) *ListProductService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ListProductService{
		gateway:  gateway,
		notifier: notifier,
	}
}

func (s *ListProductService) FindByShoppingList(ctx context.Context, listID, userID uuid.UUID) ([]models.ListProduct, error) {
	if _, err := s.authorize(ctx, listID, userID); err != nil {
		return nil, err
	}

	products, err := s.gateway.Products().Find(ctx, repository.ProductCriteria{
		ShoppingListIDs: []uuid.UUID{listID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list products: %w", err)
	}
	return products, nil
}

func (s *ListProductService) Create(ctx context.Context, listID, userID uuid.UUID, req *CreateListProductRequest) (*models.ListProduct, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	list, err := s.authorize(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	product := req.toModel(userID)
	product.ShoppingListID = list.ID
	if err := s.gateway.Products().Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create list product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"shopping_list_id": list.ID,
		"list_product_id":  product.ID,
	}).Debug("List product created")
	notify(ctx, s.notifier, NewListEvent(models.ListEventUpdated, list).WithActor(userID))

	return &product, nil
}

func (s *ListProductService) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateListProductRequest) (*models.ListProduct, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, list, err := s.loadForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Market != nil {
		updates["market"] = *req.Market
	}
	if req.Purchased != nil {
		updates["purchased"] = *req.Purchased
	}
	if req.ProductRef != nil {
		updates["product_ref"] = *req.ProductRef
	}

	return s.apply(ctx, product, list, userID, updates)
}

// TogglePurchased flips the purchased flag of one item.
func (s *ListProductService) TogglePurchased(ctx context.Context, id, userID uuid.UUID) (*models.ListProduct, error) {
	product, list, err := s.loadForMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, product, list, userID, map[string]interface{}{"purchased": !product.Purchased})
}

func (s *ListProductService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	product, list, err := s.loadForMember(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.gateway.Products().Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("failed to delete list product: %w", err)
	}

	notify(ctx, s.notifier, NewListEvent(models.ListEventUpdated, list).WithActor(userID))
	return nil
}

func (s *ListProductService) apply(ctx context.Context, product *models.ListProduct, list *models.ShoppingList, userID uuid.UUID, updates map[string]interface{}) (*models.ListProduct, error) {
	if err := s.gateway.Products().Update(ctx, product, updates); err != nil {
		return nil, fmt.Errorf("failed to update list product: %w", err)
	}

	updated, err := s.gateway.Products().FindByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if updated == nil {
		return nil, NewNotFoundError(MsgListProductNotFound)
	}

	if len(updates) > 0 {
		notify(ctx, s.notifier, NewListEvent(models.ListEventUpdated, list).WithActor(userID))
	}
	return updated, nil
}

func (s *ListProductService) authorize(ctx context.Context, listID, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.gateway.Lists().FindByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := AuthorizeMember(list, userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ListProductService) loadForMember(ctx context.Context, id, userID uuid.UUID) (*models.ListProduct, *models.ShoppingList, error) {
	product, err := s.gateway.Products().FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if product == nil {
		return nil, nil, NewNotFoundError(MsgListProductNotFound)
	}

	list, err := s.gateway.Lists().FindByID(ctx, product.ShoppingListID)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	// Items on lists the caller cannot see are reported as missing.
	if !IsMember(list, userID) {
		return nil, nil, NewNotFoundError(MsgListProductNotFound)
	}
	return product, list, nil
}
