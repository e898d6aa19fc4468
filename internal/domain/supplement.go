package domain

import "time"

// Supplement represents a product in the supplement catalog.
type Supplement struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             int64     `json:"price"`
	PriceRef          string    `json:"price_ref,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	Category          string    `json:"category"`
	Brand             string    `json:"brand"`
	StockQuantity     int       `json:"stock_quantity"`
	UsageInstructions string    `json:"usage_instructions,omitempty"`
	Benefits          []string  `json:"benefits"`
	IsAvailable       bool      `json:"is_available"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
