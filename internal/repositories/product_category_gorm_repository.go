package repositories

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductCategoryRepository is a GORM implementation of
// ProductCategoryRepository.
type GORMProductCategoryRepository struct {
	db *gorm.DB
}

// NewGORMProductCategoryRepository creates a new instance of
// GORMProductCategoryRepository.
func NewGORMProductCategoryRepository(db *gorm.DB) *GORMProductCategoryRepository {
	return &GORMProductCategoryRepository{db: db}
}

// CategoryIDs returns the category ids currently associated with a product.
func (r *GORMProductCategoryRepository) CategoryIDs(productID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.ProductCategory{}).
		Where("product_id = ?", productID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category ids for product %s: %w", productID, err)
	}
	return ids, nil
}

// Add inserts one association row per category id.
func (r *GORMProductCategoryRepository) Add(productID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		rows = append(rows, models.ProductCategory{ProductID: productID, CategoryID: categoryID})
	}
	if err := r.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to add associations for product %s: %w", productID, err)
	}
	return nil
}

// Remove deletes the association rows for the given category ids.
func (r *GORMProductCategoryRepository) Remove(productID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	err := r.db.
		Where("product_id = ? AND category_id IN ?", productID, categoryIDs).
		Delete(&models.ProductCategory{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove associations for product %s: %w", productID, err)
	}
	return nil
}

// CategoriesOf returns the full category entities associated with a product.
func (r *GORMProductCategoryRepository) CategoriesOf(productID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Model(&models.Category{}).
		Joins("JOIN product_categories ON product_categories.category_id = categories.id").
		Where("product_categories.product_id = ?", productID).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for product %s: %w", productID, err)
	}
	return categories, nil
}
