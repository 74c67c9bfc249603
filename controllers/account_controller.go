package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/middleware"
)

// AccountController serves the user dashboard: profile and order
// history, fetched from the upstream API with the visitor's token.
type AccountController struct{}

func NewAccountController() *AccountController {
	return &AccountController{}
}

func (ac *AccountController) Me(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	user, err := api.CurrentUser(c.Request.Context())
	if err != nil {
		logger.Log.Warn("failed to load profile", zap.Error(err))
		c.Error(apperrors.Upstream("failed to load profile", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AccountController) Orders(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	orders, err := api.MyOrders(c.Request.Context())
	if err != nil {
		logger.Log.Warn("failed to load orders", zap.Error(err))
		c.Error(apperrors.Upstream("failed to load orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
