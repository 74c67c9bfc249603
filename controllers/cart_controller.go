package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/logger"
	"github.com/blissorganic/storefront/middleware"
)

type CartController struct{}

func NewCartController() *CartController {
	return &CartController{}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the current line items and derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       cart.Items(),
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
		"is_open":     cart.IsOpen(),
	})
}

// AddItem looks the product up in the catalog and adds it to the cart,
// snapshotting its display fields and price. A missing quantity
// defaults to 1.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		c.Error(apperrors.New(http.StatusBadRequest, "quantity must be positive", nil))
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

	product, err := api.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		logger.Log.Warn("product lookup failed", zap.String("product_id", req.ProductID), zap.Error(err))
		c.Error(apperrors.ErrNotFound)
		return
	}

	if err := cart.AddItem(c.Request.Context(), *product, req.Quantity); err != nil {
		logger.Log.Error("failed to save cart", zap.Error(err))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to save cart", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       cart.Items(),
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// RemoveItem deletes a line item; removing an absent product is fine.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID := c.Param("product_id")

	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	if err := cart.RemoveItem(c.Request.Context(), productID); err != nil {
		logger.Log.Error("failed to update cart", zap.Error(err))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       cart.Items(),
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// UpdateQuantity sets a row's quantity; zero or negative removes it.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrBadRequest)
		return
	}

	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	if err := cart.UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		logger.Log.Error("failed to update cart", zap.Error(err))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       cart.Items(),
		"total_items": cart.TotalItems(),
		"total_price": cart.TotalPrice(),
	})
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}

	if err := cart.Clear(c.Request.Context()); err != nil {
		logger.Log.Error("failed to clear cart", zap.Error(err))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to clear cart", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// OpenPanel and ClosePanel toggle the cart panel view flag.
func (cc *CartController) OpenPanel(c *gin.Context) {
	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}
	cart.Open()
	c.JSON(http.StatusOK, gin.H{"is_open": true})
}

func (cc *CartController) ClosePanel(c *gin.Context) {
	cart, err := middleware.GetCart(c)
	if err != nil {
		c.Error(apperrors.ErrInternalServer)
		return
	}
	cart.Close()
	c.JSON(http.StatusOK, gin.H{"is_open": false})
}
