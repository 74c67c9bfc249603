package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blissorganic/storefront/clients"
	"github.com/blissorganic/storefront/database"
	"github.com/blissorganic/storefront/services"
)

const (
	// VisitorCookie identifies the browser across requests; it carries
	// no auth meaning, it only names the visitor's keyspace in storage.
	VisitorCookie = "bliss_visitor"

	visitorCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

	SessionContextKey = "session_store"
	CartContextKey    = "cart_store"
	APIContextKey     = "api_client"
)

// Visitor builds the per-visitor state containers around a namespaced
// slice of the shared KV and injects them into the request context,
// already hydrated. The API client stored alongside them signs requests
// with the session's bearer token.
func Visitor(kv database.KV, api *clients.APIClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(VisitorCookie)
		if err != nil || visitorID == "" {
			visitorID = uuid.NewString()
			c.SetCookie(VisitorCookie, visitorID, visitorCookieMaxAge, "/", "", false, true)
		}

		ns := database.Namespace(kv, "visitor:"+visitorID+":")

		sess := services.NewSessionStore(ns, api)
		sess.Hydrate(c.Request.Context())

		cart := services.NewCartStore(ns)
		cart.Hydrate(c.Request.Context())

		c.Set(SessionContextKey, sess)
		c.Set(CartContextKey, cart)
		c.Set(APIContextKey, api.WithTokens(sess))
		c.Next()
	}
}

// GetSession returns the session store injected by Visitor.
func GetSession(c *gin.Context) (*services.SessionStore, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, errors.New("session store not found in context")
	}
	sess, ok := val.(*services.SessionStore)
	if !ok {
		return nil, errors.New("session store has invalid type in context")
	}
	return sess, nil
}

// GetCart returns the cart store injected by Visitor.
func GetCart(c *gin.Context) (*services.CartStore, error) {
	val, exists := c.Get(CartContextKey)
	if !exists {
		return nil, errors.New("cart store not found in context")
	}
	cart, ok := val.(*services.CartStore)
	if !ok {
		return nil, errors.New("cart store has invalid type in context")
	}
	return cart, nil
}

// GetAPI returns the token-bound API client injected by Visitor.
func GetAPI(c *gin.Context) (*clients.APIClient, error) {
	val, exists := c.Get(APIContextKey)
	if !exists {
		return nil, errors.New("api client not found in context")
	}
	api, ok := val.(*clients.APIClient)
	if !ok {
		return nil, errors.New("api client has invalid type in context")
	}
	return api, nil
}
