package models

import "github.com/jinzhu/gorm"

// Product represents an item for sale in the shop
type Product struct {
	gorm.Model
	Slug        string `gorm:"unique_index;not null"`
	Name        string
	Description string
	Category    string
	PriceCents  int
	Stock       int
	ImageURL    string
	Available   bool
}

// TableName sets the table name for Product
func (Product) TableName() string {
	return "products"
}
