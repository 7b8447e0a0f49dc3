package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/services"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []services.ListEvent
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, event services.ListEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) types() []models.ListEventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]models.ListEventType, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

func (n *recordingNotifier) last() services.ListEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

// faultyGateway injects failures into the repositories, including the ones
// handed to a transaction callback.
type faultyGateway struct {
	repository.Gateway
	createErr error
	deleteErr error
	// steal marks the first item purchased right before the pending delete,
	// as a concurrent derivation would.
	steal bool
}

func (g faultyGateway) Lists() repository.ShoppingListRepository {
	return faultyLists{ShoppingListRepository: g.Gateway.Lists(), createErr: g.createErr}
}

func (g faultyGateway) Products() repository.ListProductRepository {
	return faultyProducts{ListProductRepository: g.Gateway.Products(), deleteErr: g.deleteErr, steal: g.steal}
}

func (g faultyGateway) RunInTransaction(ctx context.Context, fn func(tx repository.Gateway) error) error {
	return g.Gateway.RunInTransaction(ctx, func(tx repository.Gateway) error {
		g.Gateway = tx
		return fn(g)
	})
}

type faultyLists struct {
	repository.ShoppingListRepository
	createErr error
}

func (l faultyLists) Create(ctx context.Context, list *models.ShoppingList) error {
	if l.createErr != nil {
		return l.createErr
	}
	return l.ShoppingListRepository.Create(ctx, list)
}

type faultyProducts struct {
	repository.ListProductRepository
	deleteErr error
	steal     bool
}

func (p faultyProducts) DeletePending(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if p.steal && len(ids) > 0 {
		taken := &models.ListProduct{BaseModel: models.BaseModel{ID: ids[0]}}
		if err := p.ListProductRepository.Update(ctx, taken, map[string]interface{}{"purchased": true}); err != nil {
			return 0, err
		}
	}

	n, err := p.ListProductRepository.DeletePending(ctx, ids)
	if err != nil {
		return n, err
	}
	return n, p.deleteErr
}
