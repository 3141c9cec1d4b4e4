package service

import (
	"context"
	"errors"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/repository"
)

// CreateUserInput holds validated signup data
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Avatar   *string
}

// UpdateUserInput holds validated profile changes
type UpdateUserInput struct {
	Email    string
	Password string
	Avatar   *string
}

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Create registers a new user, rejecting taken emails and usernames
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	// Email is checked before username to keep error messages stable
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Avatar:   in.Avatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update changes email, password and (optionally) avatar of the actor's own profile
func (s *UserService) Update(ctx context.Context, actorID, userID int64, in UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := CanUpdateUser(actorID, user); err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		other, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err == nil && other.ID != user.ID {
			return nil, domain.ErrEmailInUse
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user.Email = in.Email
	user.Password = hashed
	if in.Avatar != nil {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
