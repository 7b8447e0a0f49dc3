// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shoplist-backend/internal/models"
	"github.com/javajoker/shoplist-backend/internal/repository"
	"github.com/javajoker/shoplist-backend/internal/utils"
)

type UserService struct {
	gateway repository.Gateway
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
}

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

func NewUserService(gateway repository.Gateway) *UserService {
	return &UserService{
		gateway: gateway,
	}
}

// FindByID is the user lookup: it returns nil, nil for unknown ids.
func (s *UserService) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.gateway.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewNotFoundError(MsgUserNotFound)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.gateway.Users().FindByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing != nil {
		if existing.Email == req.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := s.gateway.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User created")
	return user, nil
}
