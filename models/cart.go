package models

import "time"

// CartItem is one row of the visitor's cart. Display fields and price
// are captured from the product at add time and never re-fetched; a
// later catalog price change does not touch existing rows.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
