package models

import "time"

// User roles. New accounts default to RolePublisher.
const (
	RoleAdmin     = "admin"
	RolePublisher = "publisher"
	RoleCustomer  = "customer"
)

// User represents an account of the catalog API.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(40);not null"`
	Roles     string    `json:"roles" gorm:"type:varchar(20);not null;default:'publisher'"`
	FirstName string    `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string    `json:"lastName" gorm:"type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(120);not null"`
	Password  string    `json:"-" gorm:"type:varchar(200);not null"` // bcrypt hash, never the plaintext
	Status    bool      `json:"status" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
