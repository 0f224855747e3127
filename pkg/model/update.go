package model

// CategoryUpdate carries a partial category edit. Nil fields keep the
// stored value.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// ProductUpdate carries a partial product edit. Nil fields keep the stored
// value.
type ProductUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *string   `json:"price,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Premium     *bool     `json:"premium,omitempty"`
	Custom      *bool     `json:"custom,omitempty"`
	InStock     *bool     `json:"inStock,omitempty"`
}
