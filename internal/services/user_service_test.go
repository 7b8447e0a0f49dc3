package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/services"
	"github.com/javajoker/shoplist-backend/internal/testutil"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

func TestUserService(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	service := services.NewUserService(repository.NewStore(db))

	user, err := service.CreateUser(ctx, &services.CreateUserRequest{Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := service.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", found.Username)

	_, err = service.CreateUser(ctx, &services.CreateUserRequest{Username: "ana2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = service.CreateUser(ctx, &services.CreateUserRequest{Username: "ana", Email: "other@example.com"})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	_, err = service.CreateUser(ctx, &services.CreateUserRequest{Username: "a", Email: "not-an-email"})
	assert.True(t, utils.IsValidationError(err))

	missing, err := service.FindByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = service.GetUserByID(ctx, uuid.New())
	assert.EqualError(t, err, services.MsgUserNotFound)
}
