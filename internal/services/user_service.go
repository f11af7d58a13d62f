package services

import (
	"context"
	"errors"
	"fmt"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/google/uuid"
)

// UserService manages the user accounts behind the access tokens.
type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (*models.User, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: role %q", models.ErrInvalidField, req.Role)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, models.ErrDuplicateUsername
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: req.Password, // hashed by the repository on insert
		Role:         req.Role,
		PersonID:     req.PersonID,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, newPassword); err != nil {
		return err
	}
	// Old tokens must not survive a password change.
	return s.sessionRepo.DeleteUserSessions(ctx, userID.String())
}

// Deactivate disables the account and revokes every live session.
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.DeleteUserSessions(ctx, userID.String())
}
