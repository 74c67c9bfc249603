package clients

import (
	"context"
	"net/http"

	"github.com/blissorganic/storefront/models"
)

// AuthResponse is the payload of the login and register endpoints. The
// admin login endpoint returns the identity under "admin" instead of
// "user"; Identity() folds the two together.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Admin *models.User `json:"admin"`
	Token string       `json:"token"`
}

func (r *AuthResponse) Identity() *models.User {
	if r.User != nil {
		return r.User
	}
	return r.Admin
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *APIClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := a.do(ctx, http.MethodPost, "/users/login", nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) AdminLogin(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := a.do(ctx, http.MethodPost, "/admin/login", nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *APIClient) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := a.do(ctx, http.MethodPost, "/users/register", nil, registerRequest{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the authenticated user's profile.
func (a *APIClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
