package repositories

import "catalog/internal/models"

// ProductCategoryRepository manages the product/category join rows. The
// association synchronizer computes deltas against CategoryIDs and applies
// them through Add and Remove.
type ProductCategoryRepository interface {
	// CategoryIDs returns the ids of the categories currently associated
	// with the product.
	CategoryIDs(productID string) ([]string, error)
	// Add inserts one join row per category id. Callers pass only ids not
	// yet associated; the composite primary key is the backstop.
	Add(productID string, categoryIDs []string) error
	// Remove deletes the join rows for the given category ids.
	Remove(productID string, categoryIDs []string) error
	// CategoriesOf returns the full category entities associated with the
	// product, for merging into its representation.
	CategoriesOf(productID string) ([]models.Category, error)
}
