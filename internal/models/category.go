package models

import "time"

// Category is a node of the catalog tree. ParentID is nil for root
// categories; the tree is not guaranteed acyclic at this layer.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	ParentID    *string   `json:"parentId" gorm:"type:varchar(36);index"`
	Status      bool      `json:"status" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Parent *Category `json:"-" gorm:"foreignKey:ParentID"`
}
