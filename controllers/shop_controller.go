package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blissorganic/storefront/clients"
	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/middleware"
)

// ShopController serves the public catalog, proxied from the upstream
// API. Failures are attached to the context and rendered by the error
// middleware.
type ShopController struct{}

func NewShopController() *ShopController {
	return &ShopController{}
}

// ListProducts supports category, search and limit filters.
func (sc *ShopController) ListProducts(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := clients.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
	}

	products, err := api.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list products", zap.Error(err))
		c.Error(apperrors.Upstream("failed to load products", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns one product plus up to four related products from
// the same category.
func (sc *ShopController) GetProduct(c *gin.Context) {
	api, err := middleware.GetAPI(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	product, err := api.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(apperrors.ErrNotFound)
		return
	}

	related, err := api.ListProducts(c.Request.Context(), clients.ProductFilter{
		Category: product.Category,
		Limit:    4,
	})
	if err != nil {
		// Related products are decoration; the detail page still works.
		related = nil
	}

	c.JSON(http.StatusOK, gin.H{"product": product, "related": related})
}
