package models

// ProductCategory is the join row linking one product to one category. The
// composite primary key guarantees at most one row per pair; both foreign
// keys cascade deletes and updates from their parents.
type ProductCategory struct {
	ProductID  string `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	CategoryID string `json:"category_id" gorm:"primaryKey;type:varchar(36)"`

	Product  Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName keeps the join table name explicit.
func (ProductCategory) TableName() string {
	return "product_categories"
}
