// internal/services/errors.go
package services

import "errors"

// NotFoundError reports a missing user, list, item or share membership.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ConflictError reports that another request changed the rows this one was
// working on.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// ForbiddenError reports a member attempting an owner-only change.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

const (
	MsgUserNotFound         = "User not found!"
	MsgShoppingListNotFound = "Shopping List not found!"
	MsgSharedUserNotFound   = "Shared User not found"
	MsgListProductNotFound  = "List Product not found!"
)

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
