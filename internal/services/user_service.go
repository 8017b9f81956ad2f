package services

import (
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// UserChanges carries the fields of a partial user update; nil fields are
// left untouched. A non-nil Password is re-hashed before it is stored.
type UserChanges struct {
	FirstName *string
	LastName  *string
	Username  *string
	Roles     *string
	Email     *string
	Password  *string
	Status    *bool
}

// UserService handles business logic for user accounts other than
// registration and login, which live on AuthService.
type UserService struct {
	userRepo repositories.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateUser applies a partial update. Only supplied fields change; setting
// a password runs it through the credential manager so the stored value is
// always a hash.
func (s *UserService) UpdateUser(id string, changes UserChanges) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if changes.Username != nil && *changes.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(*changes.Username); err == nil && existing != nil {
			return nil, fmt.Errorf("username '%s' already taken: %w", *changes.Username, apperrors.ErrConflict)
		}
		user.Username = *changes.Username
	}
	if changes.Email != nil && *changes.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(*changes.Email); err == nil && existing != nil {
			return nil, fmt.Errorf("email '%s' already registered: %w", *changes.Email, apperrors.ErrConflict)
		}
		user.Email = *changes.Email
	}
	if changes.FirstName != nil {
		user.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		user.LastName = *changes.LastName
	}
	if changes.Roles != nil {
		user.Roles = *changes.Roles
	}
	if changes.Status != nil {
		user.Status = *changes.Status
	}
	if changes.Password != nil {
		hashed, err := s.auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user by their ID.
func (s *UserService) DeleteUser(id string) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}
