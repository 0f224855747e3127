package model

import "time"

// Product is a catalog item. Price holds the canonical display string
// ("₹1,299") and PriceAmount the same value in whole currency units, which
// is what sorting and range queries use.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=150"`
	Slug        string    `json:"slug" bson:"slug" validate:"required,slug,max=170"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"max=5000"`
	Price       string    `json:"price" bson:"price" validate:"required,price"`
	PriceAmount int64     `json:"priceAmount" bson:"price_amount" validate:"min=0"`
	CategoryID  string    `json:"categoryId" bson:"category_id" validate:"required,mongodb"`
	Images      []string  `json:"images" bson:"images" validate:"max=20,dive,required,url"`
	Featured    bool      `json:"featured" bson:"featured"`
	Premium     bool      `json:"premium" bson:"premium"`
	Custom      bool      `json:"custom" bson:"custom"`
	InStock     bool      `json:"inStock" bson:"in_stock"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// ProductFilter narrows product listings. A false flag means "don't
// filter", never "must be false".
type ProductFilter struct {
	CategoryID string
	Featured   bool
	Premium    bool
	Custom     bool
}
