package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a purchasable catalog item. Category membership is not
// embedded here; it lives in ProductCategory rows resolved through the
// repositories.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:text;not null;default:''"`
	Model       string          `json:"model" gorm:"type:varchar(50)"`
	Upc         string          `json:"upc" gorm:"type:varchar(13)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null"`
	Status      bool            `json:"status" gorm:"not null;default:false"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
