// internal/services/access.go
package services

import (
	"github.com/google/uuid"

	"github.com/javajoker/shoplist-backend/internal/models"
)

// UserIDSet is an unordered set of user ids.
type UserIDSet map[uuid.UUID]struct{}

func NewUserIDSet(ids ...uuid.UUID) UserIDSet {
	set := make(UserIDSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Add reports whether id was newly inserted.
func (s UserIDSet) Add(id uuid.UUID) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove reports whether id was present.
func (s UserIDSet) Remove(id uuid.UUID) bool {
	if _, ok := s[id]; !ok {
		return false
	}
	delete(s, id)
	return true
}

func (s UserIDSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s UserIDSet) Len() int {
	return len(s)
}

// SharedUserSet builds the set of users the list is shared with.
func SharedUserSet(list *models.ShoppingList) UserIDSet {
	return NewUserIDSet(list.SharedUserIDs()...)
}

// IsMember reports whether userID owns the list or is one of its shared users.
func IsMember(list *models.ShoppingList, userID uuid.UUID) bool {
	if list == nil {
		return false
	}
	return list.OwnerID == userID || SharedUserSet(list).Contains(userID)
}

// AuthorizeMember fails with a NotFoundError when the list is missing or
// userID may not access it. Callers cannot tell the two cases apart.
func AuthorizeMember(list *models.ShoppingList, userID uuid.UUID) error {
	if !IsMember(list, userID) {
		return NewNotFoundError(MsgShoppingListNotFound)
	}
	return nil
}

// AuthorizeOwner is AuthorizeMember restricted to the owner.
func AuthorizeOwner(list *models.ShoppingList, userID uuid.UUID) error {
	if list == nil || list.OwnerID != userID {
		return NewNotFoundError(MsgShoppingListNotFound)
	}
	return nil
}

// Recipients returns the owner followed by every shared user.
func Recipients(list *models.ShoppingList) []uuid.UUID {
	recipients := []uuid.UUID{list.OwnerID}
	for _, id := range list.SharedUserIDs() {
		if id != list.OwnerID {
			recipients = append(recipients, id)
		}
	}
	return recipients
}
