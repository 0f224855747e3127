package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProductID string    `json:"productId" bson:"product_id" validate:"required,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=80"`
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment" validate:"required,min=3,max=2000"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
