// Package repository is the persistence gateway for shopping lists, their
// line items and the users they reference.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/shoplist-backend/internal/database"
)

// Gateway groups the repositories and the transaction scope. Repositories
// obtained from the gateway passed to RunInTransaction's callback are bound
// to that transaction.
type Gateway interface {
	Lists() ShoppingListRepository
	Products() ListProductRepository
	Users() UserRepository
	RunInTransaction(ctx context.Context, fn func(tx Gateway) error) error
}

// Store is the gorm implementation of Gateway.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Lists() ShoppingListRepository {
	return &shoppingListRepo{db: s.db}
}

func (s *Store) Products() ListProductRepository {
	return &listProductRepo{db: s.db}
}

func (s *Store) Users() UserRepository {
	return &userRepo{db: s.db}
}

func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Gateway) error) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
