package repositories

import "catalog/internal/models"

// UserRepository defines the interface for user data access. Lookups signal
// absence with apperrors.ErrNotFound.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
}
