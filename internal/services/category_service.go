package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// CategoryChanges carries the fields of a partial category update; nil
// fields are left untouched.
type CategoryChanges struct {
	Name        *string
	Description *string
	ParentID    *string
	Status      *bool
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetActiveCategories returns the categories with an active status.
func (s *CategoryService) GetActiveCategories() ([]models.Category, error) {
	return s.repo.GetByStatus(true)
}

// GetInactiveCategories returns the categories with an inactive status.
func (s *CategoryService) GetInactiveCategories() ([]models.Category, error) {
	return s.repo.GetByStatus(false)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	return s.repo.Create(category)
}

// UpdateCategory applies a partial update to a category.
func (s *CategoryService) UpdateCategory(id string, changes CategoryChanges) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		category.Name = *changes.Name
	}
	if changes.Description != nil {
		category.Description = *changes.Description
	}
	if changes.ParentID != nil {
		category.ParentID = changes.ParentID
	}
	if changes.Status != nil {
		category.Status = *changes.Status
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its product associations.
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
