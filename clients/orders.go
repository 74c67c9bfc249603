package clients

import (
	"context"
	"net/http"

	"github.com/blissorganic/storefront/models"
)

func (a *APIClient) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var out models.Order
	if err := a.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyOrders returns the authenticated user's order history.
func (a *APIClient) MyOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := a.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOrders returns every order; the API restricts it to admins.
func (a *APIClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := a.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
