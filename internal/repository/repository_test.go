package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/testutil"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	store *repository.Store

	ana   *models.User
	bruno *models.User
	carla *models.User
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.OpenDB(s.T())
	s.store = repository.NewStore(s.db)

	s.ana = testutil.CreateUser(s.T(), s.db, "ana")
	s.bruno = testutil.CreateUser(s.T(), s.db, "bruno")
	s.carla = testutil.CreateUser(s.T(), s.db, "carla")
}

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 10, 0, 0, 0, time.UTC)
}

func listIDs(lists []models.ShoppingList) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	return ids
}

func (s *StoreTestSuite) TestFindAllByUserReturnsOwnedAndShared() {
	owned := testutil.CreateList(s.T(), s.db, s.ana, day(1))
	shared := testutil.CreateList(s.T(), s.db, s.bruno, day(3))
	other := testutil.CreateList(s.T(), s.db, s.carla, day(2))
	testutil.Share(s.T(), s.db, shared, s.ana)
	testutil.Share(s.T(), s.db, shared, s.carla)

	lists, err := s.store.Lists().FindAllByUser(s.ctx, s.ana.ID)
	s.Require().NoError(err)

	s.Equal([]uuid.UUID{shared.ID, owned.ID}, listIDs(lists))
	s.NotContains(listIDs(lists), other.ID)
	s.Len(lists[0].SharedUsers, 2)
	s.Equal(s.bruno.ID, lists[0].Owner.ID)
}

func (s *StoreTestSuite) TestFindAllOrdersByDateDesc() {
	a := testutil.CreateList(s.T(), s.db, s.ana, day(1))
	b := testutil.CreateList(s.T(), s.db, s.bruno, day(5))
	c := testutil.CreateList(s.T(), s.db, s.carla, day(3))

	lists, err := s.store.Lists().FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{b.ID, c.ID, a.ID}, listIDs(lists))
}

func (s *StoreTestSuite) TestFindByIDLoadsProductsByName() {
	list := testutil.CreateList(s.T(), s.db, s.ana, day(1),
		testutil.Item{Name: "rice", Quantity: 1},
		testutil.Item{Name: "beans", Quantity: 2},
	)

	found, err := s.store.Lists().FindByID(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Require().Len(found.Products, 2)
	s.Equal("beans", found.Products[0].Name)
	s.Equal("rice", found.Products[1].Name)

	missing, err := s.store.Lists().FindByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(missing)
}

func (s *StoreTestSuite) TestFindByIDForUser() {
	list := testutil.CreateList(s.T(), s.db, s.ana, day(1))
	testutil.Share(s.T(), s.db, list, s.bruno)

	for _, user := range []*models.User{s.ana, s.bruno} {
		found, err := s.store.Lists().FindByIDForUser(s.ctx, list.ID, user.ID)
		s.Require().NoError(err)
		s.NotNil(found, user.Username)
	}

	found, err := s.store.Lists().FindByIDForUser(s.ctx, list.ID, s.carla.ID)
	s.NoError(err)
	s.Nil(found)
}

func (s *StoreTestSuite) TestSharedUserAddAndRemove() {
	list := testutil.CreateList(s.T(), s.db, s.ana, day(1))

	s.Require().NoError(s.store.Lists().AddSharedUser(s.ctx, list, s.bruno))
	s.Len(list.SharedUsers, 1)

	reloaded, err := s.store.Lists().FindByID(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{s.bruno.ID}, reloaded.SharedUserIDs())

	s.Require().NoError(s.store.Lists().RemoveSharedUser(s.ctx, reloaded, s.bruno))
	reloaded, err = s.store.Lists().FindByID(s.ctx, list.ID)
	s.Require().NoError(err)
	s.Empty(reloaded.SharedUsers)
}

func (s *StoreTestSuite) TestDeleteCascades() {
	list := testutil.CreateList(s.T(), s.db, s.ana, day(1), testutil.Item{Name: "milk", Quantity: 1})
	keep := testutil.CreateList(s.T(), s.db, s.ana, day(2), testutil.Item{Name: "eggs", Quantity: 1})
	testutil.Share(s.T(), s.db, list, s.bruno)

	s.Require().NoError(s.store.Lists().Delete(s.ctx, list.ID))

	found, err := s.store.Lists().FindByID(s.ctx, list.ID)
	s.NoError(err)
	s.Nil(found)
	s.Empty(testutil.ProductsOf(s.T(), s.db, list.ID))
	s.Len(testutil.ProductsOf(s.T(), s.db, keep.ID), 1)

	var shares int64
	s.Require().NoError(s.db.Table("shopping_list_shared_users").Where("shopping_list_id = ?", list.ID).Count(&shares).Error)
	s.Zero(shares)
}

func (s *StoreTestSuite) TestFindProductsByCriteria() {
	a := testutil.CreateList(s.T(), s.db, s.ana, day(1),
		testutil.Item{Name: "milk", Quantity: 2},
		testutil.Item{Name: "eggs", Quantity: 1, Purchased: true},
	)
	b := testutil.CreateList(s.T(), s.db, s.ana, day(2), testutil.Item{Name: "bread", Quantity: 1})

	all, err := s.store.Products().Find(s.ctx, repository.ProductCriteria{ShoppingListIDs: []uuid.UUID{a.ID, b.ID}})
	s.Require().NoError(err)
	s.Equal([]string{"bread", "eggs", "milk"}, names(all))

	pending, err := s.store.Products().Find(s.ctx, repository.ProductCriteria{
		ShoppingListIDs: []uuid.UUID{a.ID, b.ID},
		PendingOnly:     true,
		ForUpdate:       true,
	})
	s.Require().NoError(err)
	s.Equal([]string{"bread", "milk"}, names(pending))

	none, err := s.store.Products().Find(s.ctx, repository.ProductCriteria{})
	s.NoError(err)
	s.Empty(none)
}

func (s *StoreTestSuite) TestDeletePendingSkipsPurchased() {
	list := testutil.CreateList(s.T(), s.db, s.ana, day(1),
		testutil.Item{Name: "milk", Quantity: 2},
		testutil.Item{Name: "eggs", Quantity: 1, Purchased: true},
	)
	products := testutil.ProductsOf(s.T(), s.db, list.ID)

	deleted, err := s.store.Products().DeletePending(s.ctx, []uuid.UUID{products[0].ID, products[1].ID})
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	left := testutil.ProductsOf(s.T(), s.db, list.ID)
	s.Equal([]string{"eggs"}, names(left))
}

func (s *StoreTestSuite) TestRunInTransactionRollsBack() {
	boom := errors.New("boom")

	err := s.store.RunInTransaction(s.ctx, func(tx repository.Gateway) error {
		list := &models.ShoppingList{
			Date:     day(1),
			OwnerID:  s.ana.ID,
			Products: []models.ListProduct{{Name: "milk", Quantity: 1}},
		}
		if err := tx.Lists().Create(s.ctx, list); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	lists, err := s.store.Lists().FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(lists)
}

func (s *StoreTestSuite) TestUserLookup() {
	user, err := s.store.Users().FindByID(s.ctx, s.ana.ID)
	s.Require().NoError(err)
	s.Equal("ana", user.Username)

	user, err = s.store.Users().FindByEmailOrUsername(s.ctx, "bruno@example.com", "nobody")
	s.Require().NoError(err)
	s.Equal(s.bruno.ID, user.ID)

	user, err = s.store.Users().FindByEmailOrUsername(s.ctx, "nobody@example.com", "carla")
	s.Require().NoError(err)
	s.Equal(s.carla.ID, user.ID)

	user, err = s.store.Users().FindByEmailOrUsername(s.ctx, "nobody@example.com", "nobody")
	s.NoError(err)
	s.Nil(user)

	user, err = s.store.Users().FindByID(s.ctx, uuid.New())
	s.NoError(err)
	s.Nil(user)
}

func names(products []models.ListProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestProductUpdateAndDelete(t *testing.T) {
	db := testutil.OpenDB(t)
	store := repository.NewStore(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "dora")
	list := testutil.CreateList(t, db, owner, day(1), testutil.Item{Name: "tea", Quantity: 1})
	product := testutil.ProductsOf(t, db, list.ID)[0]

	require.NoError(t, store.Products().Update(ctx, &product, map[string]interface{}{"quantity": 4, "purchased": true}))
	reloaded, err := store.Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Quantity)
	assert.True(t, reloaded.Purchased)

	require.NoError(t, store.Products().Delete(ctx, product.ID))
	reloaded, err = store.Products().FindByID(ctx, product.ID)
	assert.NoError(t, err)
	assert.Nil(t, reloaded)
}
