package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/services"
)

func TestUserIDSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := services.NewUserIDSet(a, a)

	assert.Equal(t, 1, set.Len())
	assert.False(t, set.Add(a))
	assert.True(t, set.Add(b))
	assert.True(t, set.Contains(b))

	assert.True(t, set.Remove(a))
	assert.False(t, set.Remove(a))
	assert.False(t, set.Contains(a))
	assert.Equal(t, 1, set.Len())
}

func listWith(owner uuid.UUID, shared ...uuid.UUID) *models.ShoppingList {
	list := &models.ShoppingList{OwnerID: owner}
	list.ID = uuid.New()
	for _, id := range shared {
		u := models.User{}
		u.ID = id
		list.SharedUsers = append(list.SharedUsers, u)
	}
	return list
}

func TestMembership(t *testing.T) {
	owner, member, stranger := uuid.New(), uuid.New(), uuid.New()
	list := listWith(owner, member)

	assert.True(t, services.IsMember(list, owner))
	assert.True(t, services.IsMember(list, member))
	assert.False(t, services.IsMember(list, stranger))
	assert.False(t, services.IsMember(nil, owner))

	assert.NoError(t, services.AuthorizeMember(list, member))
	err := services.AuthorizeMember(list, stranger)
	assert.True(t, services.IsNotFound(err))
	assert.EqualError(t, err, services.MsgShoppingListNotFound)
	assert.True(t, services.IsNotFound(services.AuthorizeMember(nil, owner)))

	assert.NoError(t, services.AuthorizeOwner(list, owner))
	assert.True(t, services.IsNotFound(services.AuthorizeOwner(list, member)))
}

func TestRecipientsStartWithOwner(t *testing.T) {
	owner, a, b := uuid.New(), uuid.New(), uuid.New()
	list := listWith(owner, a, b)

	assert.Equal(t, []uuid.UUID{owner, a, b}, services.Recipients(list))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, services.IsConflict(services.NewConflictError("x")))
	assert.True(t, services.IsForbidden(services.NewForbiddenError("x")))
	assert.False(t, services.IsNotFound(services.NewConflictError("x")))
}
