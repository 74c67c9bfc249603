package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blissorganic/storefront/clients"
	"github.com/blissorganic/storefront/models"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"

	freeDeliveryThreshold = 500.0
	deliveryCharge        = 50.0
	taxRate               = 0.05
)

// CheckoutForm carries the shipping and payment fields collected at
// checkout. Payment fields are forwarded to the API untouched.
type CheckoutForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`

	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
	NameOnCard    string `json:"name_on_card"`
}

// Validate returns one message per missing field. Card fields are only
// required when paying by card.
func (f *CheckoutForm) Validate() map[string]string {
	errs := map[string]string{}

	require := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = message
		}
	}

	require("first_name", f.FirstName, "First name is required")
	require("last_name", f.LastName, "Last name is required")
	require("email", f.Email, "Email is required")
	require("phone", f.Phone, "Phone number is required")
	require("address", f.Address, "Address is required")
	require("city", f.City, "City is required")
	require("state", f.State, "State is required")
	require("pincode", f.Pincode, "Pincode is required")

	if f.PaymentMethod == PaymentMethodCard {
		require("card_number", f.CardNumber, "Card number is required")
		require("expiry_date", f.ExpiryDate, "Expiry date is required")
		require("cvv", f.CVV, "CVV is required")
		require("name_on_card", f.NameOnCard, "Name on card is required")
	}

	return errs
}

// Pricing computes the order charges from the cart subtotal: delivery
// is free from 500 upward, tax is a flat 5%.
func Pricing(subtotal float64) (delivery, tax, total float64) {
	if subtotal < freeDeliveryThreshold {
		delivery = deliveryCharge
	}
	tax = subtotal * taxRate
	total = subtotal + delivery + tax
	return delivery, tax, total
}

var (
	ErrNotAuthenticated = fmt.Errorf("checkout requires an authenticated session")
	ErrEmptyCart        = fmt.Errorf("checkout requires a non-empty cart")
)

// CheckoutService places orders against the upstream API and clears the
// cart once the order is accepted.
type CheckoutService struct {
	api *clients.APIClient
}

func NewCheckoutService(api *clients.APIClient) *CheckoutService {
	return &CheckoutService{api: api}
}

// PlaceOrder validates preconditions, forwards the order and clears the
// cart on success. The returned error is an *clients.APIError when the
// upstream rejected the order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *SessionStore, cart *CartStore, form CheckoutForm) (*models.Order, error) {
	if !sess.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	items := cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := cart.TotalPrice()
	delivery, tax, total := Pricing(subtotal)

	order, err := s.api.PlaceOrder(ctx, models.OrderRequest{
		Items: items,
		Shipping: models.ShippingDetails{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Address:   form.Address,
			City:      form.City,
			State:     form.State,
			Pincode:   form.Pincode,
		},
		PaymentMethod:  form.PaymentMethod,
		Subtotal:       subtotal,
		DeliveryCharge: delivery,
		Tax:            tax,
		Total:          total,
	})
	if err != nil {
		return nil, err
	}

	if err := cart.Clear(ctx); err != nil {
		return order, err
	}
	return order, nil
}
