package models

import (
	"time"
)

// Product is a catalog entry. The service never writes products.
type Product struct {
	ID        ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Brand     string    `bson:"brand" json:"brand"`
	Category  string    `bson:"category" json:"category"`
	Price     float64   `bson:"price" json:"price"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func (Product) CollectionName() string {
	return "products"
}

// Document field names used by filters, sorts and facets.
const (
	FieldName      = "name"
	FieldBrand     = "brand"
	FieldCategory  = "category"
	FieldPrice     = "price"
	FieldCreatedAt = "createdAt"
)
