package services

import (
	"encoding/json"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProductChanges carries the fields of a partial product update; nil fields
// are left untouched.
type ProductChanges struct {
	Name        *string
	Description *string
	Model       *string
	Upc         *string
	Price       *decimal.Decimal
	Status      *bool
}

// ProductService handles business logic related to products, including the
// transactional reconciliation of category associations.
type ProductService struct {
	productRepo repositories.ProductRepository
	tx          repositories.TxRunner
	mqClient    *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil; event
// publishing is then skipped.
func NewProductService(productRepo repositories.ProductRepository, tx repositories.TxRunner, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		tx:          tx,
		mqClient:    mqClient,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct persists a new product and reconciles its category
// associations in one transaction, so a bad category id rolls back the
// product row as well. Returns the product with its full category set.
func (s *ProductService) CreateProduct(product *models.Product, categoryIDs []string) (*models.Product, []models.Category, error) {
	var categories []models.Category

	err := s.tx.Run(func(products repositories.ProductRepository, cats repositories.CategoryRepository, assoc repositories.ProductCategoryRepository) error {
		if err := products.Create(product); err != nil {
			return err
		}
		sync := NewAssociationSynchronizer(cats, assoc)
		var err error
		categories, err = sync.Sync(product.ID, categoryIDs)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish("product.created", product)
	return product, categories, nil
}

// UpdateProduct applies a partial update to a product. When categoryIDs is
// non-nil the association set is reconciled to it in the same transaction;
// a nil categoryIDs leaves associations untouched.
func (s *ProductService) UpdateProduct(id string, changes ProductChanges, categoryIDs *[]string) (*models.Product, []models.Category, error) {
	var (
		product    *models.Product
		categories []models.Category
	)

	err := s.tx.Run(func(products repositories.ProductRepository, cats repositories.CategoryRepository, assoc repositories.ProductCategoryRepository) error {
		var err error
		product, err = products.GetByID(id)
		if err != nil {
			return err
		}

		applyProductChanges(product, changes)
		if err := products.Update(product); err != nil {
			return err
		}

		if categoryIDs != nil {
			sync := NewAssociationSynchronizer(cats, assoc)
			categories, err = sync.Sync(id, *categoryIDs)
			return err
		}
		categories, err = assoc.CategoriesOf(id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish("product.updated", product)
	return product, categories, nil
}

// DeleteProduct deletes a product and its association rows.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.publish("product.deleted", map[string]string{"id": id})
	return nil
}

// publish sends a catalog event; failures are logged, never surfaced, so
// event delivery can never fail a completed request.
func (s *ProductService) publish(routingKey string, payload interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", routingKey).Msg("failed to marshal catalog event")
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to publish catalog event")
	}
}

func applyProductChanges(product *models.Product, changes ProductChanges) {
	if changes.Name != nil {
		product.Name = *changes.Name
	}
	if changes.Description != nil {
		product.Description = *changes.Description
	}
	if changes.Model != nil {
		product.Model = *changes.Model
	}
	if changes.Upc != nil {
		product.Upc = *changes.Upc
	}
	if changes.Price != nil {
		product.Price = *changes.Price
	}
	if changes.Status != nil {
		product.Status = *changes.Status
	}
}
