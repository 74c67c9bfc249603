package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blissorganic/storefront/clients"
	"github.com/blissorganic/storefront/controllers"
	"github.com/blissorganic/storefront/database"
	apperrors "github.com/blissorganic/storefront/errors"
	"github.com/blissorganic/storefront/middleware"
)

// RegisterRoutes wires the storefront surface. Every route sits behind
// the Visitor middleware so handlers always find hydrated session and
// cart stores in the context, and behind the error middleware that
// renders failures handlers attach via c.Error.
func RegisterRoutes(r *gin.Engine, kv database.KV, api *clients.APIClient) {
	authController := controllers.NewAuthController()
	shopController := controllers.NewShopController()
	cartController := controllers.NewCartController()
	checkoutController := controllers.NewCheckoutController()
	accountController := controllers.NewAccountController()
	adminController := controllers.NewAdminController()

	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.Visitor(kv, api))

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.CredentialRateLimit(), authController.Login)
		auth.POST("/register", middleware.CredentialRateLimit(), authController.Register)
		auth.POST("/logout", authController.Logout)
		auth.GET("/session", authController.Session)
	}

	shop := r.Group("/shop")
	{
		shop.GET("/products", shopController.ListProducts)
		shop.GET("/products/:id", shopController.GetProduct)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", cartController.GetCart)
		cart.POST("/add", cartController.AddItem)
		cart.PUT("/update", cartController.UpdateQuantity)
		cart.DELETE("/remove/:product_id", cartController.RemoveItem)
		cart.DELETE("/clear", cartController.ClearCart)
		cart.POST("/open", cartController.OpenPanel)
		cart.POST("/close", cartController.ClosePanel)
	}

	// Checkout and the dashboard require an authenticated session.
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/checkout", checkoutController.Checkout)
		authed.GET("/account/me", accountController.Me)
		authed.GET("/account/orders", accountController.Orders)
	}

	// Admin console requires the admin role.
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/products", adminController.ListProducts)
		admin.POST("/products", adminController.CreateProduct)
		admin.PUT("/products/:id", adminController.UpdateProduct)
		admin.DELETE("/products/:id", adminController.DeleteProduct)
		admin.GET("/orders", adminController.ListOrders)
	}
}
