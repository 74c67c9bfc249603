package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blissorganic/storefront/clients"
	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/middleware"
	"github.com/blissorganic/storefront/models"
)

// AdminController is the product and order management console. Routes
// are behind RequireAdmin; the upstream API enforces its own checks on
// the forwarded bearer token as well.
type AdminController struct{}

func NewAdminController() *AdminController {
	return &AdminController{}
}

func (ac *AdminController) ListProducts(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	products, err := api.ListProducts(c.Request.Context(), clients.ProductFilter{})
	if err != nil {
		logger.Log.Error("failed to list products", zap.Error(err))
		c.Error(apperrors.Upstream("failed to load products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (ac *AdminController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.Error(apperrors.ErrBadRequest)
		return
	}

	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	created, err := api.CreateProduct(c.Request.Context(), product)
	if err != nil {
		logger.Log.Error("failed to create product", zap.Error(err))
		c.Error(apperrors.Upstream("failed to create product", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": created})
}

func (ac *AdminController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.Error(apperrors.ErrBadRequest)
		return
	}

	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	updated, err := api.UpdateProduct(c.Request.Context(), c.Param("id"), product)
	if err != nil {
		logger.Log.Error("failed to update product", zap.Error(err))
		c.Error(apperrors.Upstream("failed to update product", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": updated})
}

func (ac *AdminController) DeleteProduct(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	if err := api.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		logger.Log.Error("failed to delete product", zap.Error(err))
		c.Error(apperrors.Upstream("failed to delete product", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	orders, err := api.ListOrders(c.Request.Context())
	if err != nil {
		logger.Log.Error("failed to list orders", zap.Error(err))
		c.Error(apperrors.Upstream("failed to load orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
