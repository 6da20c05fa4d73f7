package models

import "github.com/jinzhu/gorm"

// User represents a storefront customer or a staff member
type User struct {
	gorm.Model
	Email    string `gorm:"unique_index;not null"`
	Name     string
	Role     string `gorm:"default:'customer'"`
	Approved bool   `gorm:"default:false"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}
