package models

import "time"

type MenuItem struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Price     float64   `bson:"price" json:"price"`
	Category  Category  `bson:"category" json:"category"`
	Available bool      `bson:"is_available" json:"is_available"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MenuFilter narrows a menu listing. A nil Category matches every category.
type MenuFilter struct {
	Category      *Category
	AvailableOnly bool
}

type NewMenuItem struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Price    string `json:"price" validate:"required"`
	Category string `json:"category"`
}
