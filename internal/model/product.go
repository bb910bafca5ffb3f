package model

import "time"

// Product represents a marketplace listing. Price travels as a decimal
// string so it never passes through binary floating point.
type Product struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       string    `json:"price"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `json:"user,omitempty"`
}

// ProductRequest represents the payload for creating or editing a product.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       string  `json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
}
