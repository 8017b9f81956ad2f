package repositories

import "gorm.io/gorm"

// TxRunner executes a callback with repositories bound to one database
// transaction. The product write and its association reconciliation run
// through this so a failed reconciliation rolls back the product row.
type TxRunner interface {
	Run(fn func(products ProductRepository, categories CategoryRepository, associations ProductCategoryRepository) error) error
}

// GormTxRunner is the GORM implementation of TxRunner.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a new GormTxRunner.
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// Run starts a transaction, hands tx-bound repositories to fn, and commits
// when fn returns nil. Any error rolls the whole transaction back.
func (r *GormTxRunner) Run(fn func(products ProductRepository, categories CategoryRepository, associations ProductCategoryRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(
			NewGORMProductRepository(tx),
			NewGORMCategoryRepository(tx),
			NewGORMProductCategoryRepository(tx),
		)
	})
}
