package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blissorganic/storefront/clients"
	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/middleware"
	"github.com/blissorganic/storefront/services"
)

type CheckoutController struct{}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{}
}

// Checkout validates the form, forwards the order to the API and clears
// the cart on success. The route is behind RequireAuth, so the session
// is already known to be authenticated.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var form services.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	sess, err := middleware.GetSession(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}
	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	checkout := services.NewCheckoutService(api)
	order, err := checkout.PlaceOrder(c.Request.Context(), sess, cart, form)
	switch {
	case err == services.ErrEmptyCart:
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	case err == services.ErrNotAuthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	case err != nil:
		if apiErr, ok := err.(*clients.APIError); ok {
			c.Error(apperrors.Upstream(apiErr.Message, err))
			return
		}
		logger.Log.Error("failed to place order", zap.Error(err))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to place order", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order placed", "order": order})
}
