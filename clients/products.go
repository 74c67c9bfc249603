package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blissorganic/storefront/models"
)

// ProductFilter narrows a catalog listing. Zero values are omitted.
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (a *APIClient) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var out []models.Product
	if err := a.do(ctx, http.MethodGet, "/products", filter.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *APIClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := a.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := a.do(ctx, http.MethodPost, "/products", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) UpdateProduct(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := a.do(ctx, http.MethodPut, "/products/"+id, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) DeleteProduct(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}
