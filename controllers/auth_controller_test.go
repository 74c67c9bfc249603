package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/blissorganic/storefront/clients"
	"github.com/blissorganic/storefront/database"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/models"
	"github.com/blissorganic/storefront/routes"
)

// storefront spins up the full router against a fake upstream API, so
// tests drive it the way a browser would, replaying the visitor cookie
// between requests.
type storefront struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newStorefront(t *testing.T, upstream http.HandlerFunc) *storefront {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	router := gin.New()
	routes.RegisterRoutes(router, database.NewMemoryKV(), clients.NewAPIClient(srv.URL, 5*time.Second))
	return &storefront{router: router}
}

func (s *storefront) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		s.cookies = append(s.cookies, set...)
	}
	return w
}

func upstreamAPI(t *testing.T) http.HandlerFunc {
	t.Helper()
	user := models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "user"}
	product := models.Product{ID: "p1", Name: "Organic Apples", Unit: "kg", Price: 100}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/users/login" && r.Method == http.MethodPost:
			var creds struct{ Email, Password string }
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid password"})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"user": user, "token": "tok-abc"})
		case r.URL.Path == "/products/p1":
			json.NewEncoder(w).Encode(product)
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		}
	}
}

func TestLoginSessionFlow(t *testing.T) {
	sf := newStorefront(t, upstreamAPI(t))

	// Fresh visitor is anonymous.
	w := sf.do(t, http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_authenticated":false`)

	// Wrong password surfaces the server's message.
	w = sf.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")

	// Successful login.
	w = sf.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	// The session survives into the next request via the visitor cookie.
	w = sf.do(t, http.MethodGet, "/auth/session", "")
	assert.Contains(t, w.Body.String(), `"is_authenticated":true`)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)

	// Logout clears it.
	w = sf.do(t, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodGet, "/auth/session", "")
	assert.Contains(t, w.Body.String(), `"is_authenticated":false`)
}

func TestCartFlow(t *testing.T) {
	sf := newStorefront(t, upstreamAPI(t))

	// Add twice: quantities merge into one line item.
	w := sf.do(t, http.MethodPost, "/cart/add", `{"product_id":"p1","quantity":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = sf.do(t, http.MethodPost, "/cart/add", `{"product_id":"p1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodGet, "/cart", "")
	assert.Contains(t, w.Body.String(), `"total_items":3`)
	assert.Contains(t, w.Body.String(), `"total_price":300`)

	// Unknown product is rejected before touching the cart.
	w = sf.do(t, http.MethodPost, "/cart/add", `{"product_id":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Decrementing to zero removes the row.
	w = sf.do(t, http.MethodPut, "/cart/update", `{"product_id":"p1","quantity":0}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodGet, "/cart", "")
	assert.Contains(t, w.Body.String(), `"total_items":0`)
}

func TestUpstreamFailureResponses(t *testing.T) {
	// The upstream API is down: every proxied call fails and the error
	// middleware owns the response.
	sf := newStorefront(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := sf.do(t, http.MethodGet, "/shop/products", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"code":502`)
	assert.Contains(t, w.Body.String(), "failed to load products")

	// A product the catalog does not know stays a 404.
	w = sf.do(t, http.MethodGet, "/shop/products/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":404`)
}

func TestGuardedRoutes(t *testing.T) {
	sf := newStorefront(t, upstreamAPI(t))

	// Anonymous visitor is sent to login.
	w := sf.do(t, http.MethodGet, "/account/me", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Ordinary user cannot reach the admin console.
	w = sf.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = sf.do(t, http.MethodGet, "/admin/products", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
