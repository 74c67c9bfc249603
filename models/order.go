package models

import "time"

// ShippingDetails are the checkout form fields forwarded to the API.
type ShippingDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// OrderRequest is the payload sent to POST /orders. Payment fields are
// collected and forwarded as-is; no payment processing happens here.
type OrderRequest struct {
	Items          []CartItem      `json:"items"`
	Shipping       ShippingDetails `json:"shipping"`
	PaymentMethod  string          `json:"payment_method"`
	Subtotal       float64         `json:"subtotal"`
	DeliveryCharge float64         `json:"delivery_charge"`
	Tax            float64         `json:"tax"`
	Total          float64         `json:"total"`
}

type Order struct {
	ID             string          `json:"id"`
	Items          []CartItem      `json:"items"`
	Shipping       ShippingDetails `json:"shipping"`
	PaymentMethod  string          `json:"payment_method"`
	Subtotal       float64         `json:"subtotal"`
	DeliveryCharge float64         `json:"delivery_charge"`
	Tax            float64         `json:"tax"`
	Total          float64         `json:"total"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
