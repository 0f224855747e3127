package model

import "time"

type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Slug        string    `json:"slug" bson:"slug" validate:"required,slug,max=120"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"max=1000"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
