package services

import (
	"errors"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// AssociationSynchronizer reconciles a product's persisted category
// associations with a requested set of category ids: missing rows are added,
// rows no longer requested are removed. It is constructed over repositories
// bound to the caller's transaction so a failed reconciliation rolls back
// together with the product write.
type AssociationSynchronizer struct {
	categories   repositories.CategoryRepository
	associations repositories.ProductCategoryRepository
}

// NewAssociationSynchronizer creates a new AssociationSynchronizer.
func NewAssociationSynchronizer(categories repositories.CategoryRepository, associations repositories.ProductCategoryRepository) *AssociationSynchronizer {
	return &AssociationSynchronizer{
		categories:   categories,
		associations: associations,
	}
}

// Sync makes the association rows for the product exactly match the
// requested ids (duplicates collapsed) and returns the resulting full
// category entities. Every requested id must name an existing category;
// otherwise the whole call fails with apperrors.ErrReferenceNotFound.
func (s *AssociationSynchronizer) Sync(productID string, requested []string) ([]models.Category, error) {
	wanted := dedupe(requested)

	for _, categoryID := range wanted {
		if _, err := s.categories.GetByID(categoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("category %s does not exist: %w", categoryID, apperrors.ErrReferenceNotFound)
			}
			return nil, err
		}
	}

	current, err := s.associations.CategoryIDs(productID)
	if err != nil {
		return nil, err
	}

	toAdd, toRemove := diff(wanted, current)
	if len(toAdd) > 0 {
		if err := s.associations.Add(productID, toAdd); err != nil {
			return nil, err
		}
	}
	if len(toRemove) > 0 {
		if err := s.associations.Remove(productID, toRemove); err != nil {
			return nil, err
		}
	}

	return s.associations.CategoriesOf(productID)
}

// dedupe collapses duplicates while preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// diff returns the ids in wanted but not current, and in current but not
// wanted.
func diff(wanted, current []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	wantedSet := make(map[string]bool, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = true
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !wantedSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
