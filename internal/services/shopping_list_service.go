// internal/services/shopping_list_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type ShoppingListService struct {
	gateway  repository.Gateway
	notifier Notifier
}

type CreateShoppingListRequest struct {
	Name     *string                    `json:"name,omitempty" validate:"omitempty,max=255"`
	Date     *time.Time                 `json:"date,omitempty"`
	Done     bool                       `json:"done"`
	Products []CreateListProductRequest `json:"products,omitempty" validate:"omitempty,dive"`
}

type UpdateShoppingListRequest struct {
	Name *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Date *time.Time `json:"date,omitempty"`
	Done *bool      `json:"done,omitempty"`
}

type DeriveShoppingListRequest struct {
	ShoppingListIDs []uuid.UUID               `json:"shopping_list_ids" validate:"required,min=1"`
	ShoppingList    CreateShoppingListRequest `json:"shopping_list"`
	Remove          bool                      `json:"remove"`
}

type ShareShoppingListRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

func NewShoppingListService(gateway repository.Gateway, notifier Notifier) *ShoppingListService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ShoppingListService{
		gateway:  gateway,
		notifier: notifier,
	}
}

func (s *ShoppingListService) FindAll(ctx context.Context) ([]models.ShoppingList, error) {
	lists, err := s.gateway.Lists().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shopping lists: %w", err)
	}
	return lists, nil
}

func (s *ShoppingListService) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	lists, err := s.gateway.Lists().FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user shopping lists: %w", err)
	}
	return lists, nil
}

// FindOne returns nil, nil when the list does not exist.
func (s *ShoppingListService) FindOne(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.gateway.Lists().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return list, nil
}

// FindOneByUser returns nil, nil when the list does not exist or userID is
// not a member.
func (s *ShoppingListService) FindOneByUser(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.gateway.Lists().FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return list, nil
}

// AuthorizeMember loads the list and checks userID may access it.
func (s *ShoppingListService) AuthorizeMember(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMember(list, userID); err != nil {
		return nil, err
	}
	return list, nil
}

// AuthorizeOwner loads the list and checks userID owns it.
func (s *ShoppingListService) AuthorizeOwner(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(list, userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ShoppingListService) Create(ctx context.Context, ownerID uuid.UUID, req *CreateShoppingListRequest) (*models.ShoppingList, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	owner, err := s.gateway.Users().FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if owner == nil {
		return nil, NewNotFoundError(MsgUserNotFound)
	}

	seeds := make([]models.ListProduct, 0, len(req.Products))
	for i := range req.Products {
		seeds = append(seeds, req.Products[i].toModel(owner.ID))
	}

	list := newShoppingList(owner.ID, req, seeds)
	if err := s.gateway.Lists().Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	created, err := s.reload(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"shopping_list_id": created.ID,
		"owner_id":         owner.ID,
		"products":         len(created.Products),
	}).Info("Shopping list created")
	notify(ctx, s.notifier, NewListEvent(models.ListEventCreated, created).WithActor(owner.ID))

	return created, nil
}

func (s *ShoppingListService) Update(ctx context.Context, id uuid.UUID, req *UpdateShoppingListRequest) (*models.ShoppingList, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	list, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, NewNotFoundError(MsgShoppingListNotFound)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Done != nil {
		updates["done"] = *req.Done
	}

	if err := s.gateway.Lists().Update(ctx, list, updates); err != nil {
		return nil, fmt.Errorf("failed to update shopping list: %w", err)
	}

	updated, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		notify(ctx, s.notifier, NewListEvent(models.ListEventUpdated, updated))
	}
	return updated, nil
}

// AddSharedUsersToShoppingList shares the list with userID. Sharing with a
// user who already has access leaves the list unchanged.
func (s *ShoppingListService) AddSharedUsersToShoppingList(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	user, list, err := s.loadShareTargets(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if list.OwnerID == user.ID || SharedUserSet(list).Contains(user.ID) {
		return list, nil
	}

	if err := s.gateway.Lists().AddSharedUser(ctx, list, user); err != nil {
		return nil, fmt.Errorf("failed to share shopping list: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"shopping_list_id": list.ID,
		"user_id":          user.ID,
	}).Info("Shopping list shared")
	notify(ctx, s.notifier, NewListEvent(models.ListEventShared, list).WithTarget(user.ID))

	return list, nil
}

// DeleteSharedUserFromShoppingList removes userID from the shared users.
// It serves both an owner revoking access and a user leaving the list.
func (s *ShoppingListService) DeleteSharedUserFromShoppingList(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	user, list, err := s.loadShareTargets(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	remaining := SharedUserSet(list)
	if !remaining.Remove(user.ID) {
		return nil, NewNotFoundError(MsgSharedUserNotFound)
	}

	// Build the event first so the removed user is still a recipient.
	event := NewListEvent(models.ListEventUnshared, list).WithTarget(user.ID)

	if err := s.gateway.Lists().RemoveSharedUser(ctx, list, user); err != nil {
		return nil, fmt.Errorf("failed to unshare shopping list: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"shopping_list_id": list.ID,
		"user_id":          user.ID,
		"shared_users":     remaining.Len(),
	}).Info("Shopping list unshared")
	notify(ctx, s.notifier, event)

	return list, nil
}

// RevokeShare lets the owner remove any shared user and a shared user remove
// only themselves.
func (s *ShoppingListService) RevokeShare(ctx context.Context, id, actorID, targetID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.AuthorizeMember(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != list.OwnerID && actorID != targetID {
		return nil, NewForbiddenError("Only the owner can remove other users from a shopping list")
	}
	return s.DeleteSharedUserFromShoppingList(ctx, id, targetID)
}

// CreateShoppingListFromPendingProducts creates a list seeded with every
// unpurchased item of the source lists. With remove set the consumed items
// are deleted in the same transaction.
func (s *ShoppingListService) CreateShoppingListFromPendingProducts(ctx context.Context, listIDs []uuid.UUID, ownerID uuid.UUID, req *CreateShoppingListRequest, remove bool) (*models.ShoppingList, error) {
	return s.derive(ctx, listIDs, ownerID, req, true, remove)
}

// CreateShoppingListFromShoppingLists creates a list seeded with all items
// of the source lists merged by name.
func (s *ShoppingListService) CreateShoppingListFromShoppingLists(ctx context.Context, listIDs []uuid.UUID, ownerID uuid.UUID, req *CreateShoppingListRequest) (*models.ShoppingList, error) {
	return s.derive(ctx, listIDs, ownerID, req, false, false)
}

func (s *ShoppingListService) derive(ctx context.Context, listIDs []uuid.UUID, ownerID uuid.UUID, req *CreateShoppingListRequest, pendingOnly, remove bool) (*models.ShoppingList, error) {
	if req == nil {
		req = &CreateShoppingListRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var list *models.ShoppingList
	var consumed int

	err := s.gateway.RunInTransaction(ctx, func(tx repository.Gateway) error {
		owner, err := tx.Users().FindByID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if owner == nil {
			return NewNotFoundError(MsgUserNotFound)
		}

		items, err := tx.Products().Find(ctx, repository.ProductCriteria{
			ShoppingListIDs: listIDs,
			PendingOnly:     pendingOnly,
			ForUpdate:       remove,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch source products: %w", err)
		}

		var seeds []models.ListProduct
		if pendingOnly {
			seeds = PendingSeeds(items, owner.ID)
		} else {
			seeds = MergeByName(items, owner.ID)
		}

		list = newShoppingList(owner.ID, req, seeds)
		if err := tx.Lists().Create(ctx, list); err != nil {
			return fmt.Errorf("failed to create shopping list: %w", err)
		}

		if !remove {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		deleted, err := tx.Products().DeletePending(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to remove consumed products: %w", err)
		}
		// Another derivation got to some of these items first.
		if deleted != int64(len(ids)) {
			return NewConflictError("Pending products changed while creating the shopping list, please retry")
		}
		consumed = len(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.reload(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"shopping_list_id": created.ID,
		"owner_id":         ownerID,
		"sources":          len(listIDs),
		"pending_only":     pendingOnly,
		"products":         len(created.Products),
		"consumed":         consumed,
	}).Info("Shopping list derived")
	notify(ctx, s.notifier, NewListEvent(models.ListEventDerived, created).WithActor(ownerID))

	return created, nil
}

// Delete hard-deletes the list with its products and share rows. Deleting a
// missing list is a no-op.
func (s *ShoppingListService) Delete(ctx context.Context, id uuid.UUID) error {
	list, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if list == nil {
		return nil
	}

	err = s.gateway.RunInTransaction(ctx, func(tx repository.Gateway) error {
		return tx.Lists().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	logrus.WithField("shopping_list_id", id).Info("Shopping list deleted")
	notify(ctx, s.notifier, NewListEvent(models.ListEventDeleted, list))
	return nil
}

func (s *ShoppingListService) loadShareTargets(ctx context.Context, id, userID uuid.UUID) (*models.User, *models.ShoppingList, error) {
	user, err := s.gateway.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	if user == nil {
		return nil, nil, NewNotFoundError(MsgUserNotFound)
	}

	list, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, NewNotFoundError(MsgShoppingListNotFound)
	}
	return user, list, nil
}

func (s *ShoppingListService) reload(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, NewNotFoundError(MsgShoppingListNotFound)
	}
	return list, nil
}

func newShoppingList(ownerID uuid.UUID, req *CreateShoppingListRequest, products []models.ListProduct) *models.ShoppingList {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	return &models.ShoppingList{
		Name:     req.Name,
		Date:     date,
		Done:     req.Done,
		OwnerID:  ownerID,
		Products: products,
	}
}
