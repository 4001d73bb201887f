package handlers

import "github.com/gin-gonic/gin"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Orders    *OrderHandler
	Rewards   *RewardHandler
	Products  *ProductHandler
	Carts     *CartHandler
	Addresses *AddressHandler
	Contacts  *ContactHandler
}

// Register mounts all routes under /api. The payment confirmation and the
// contact form are unauthenticated: the gateway calls back without a user
// token, and anyone may write in.
func Register(router *gin.Engine, h Handlers, jwtSecret string) {
	api := router.Group("/api")

	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.Get)
	api.POST("/payments/confirm", h.Orders.ConfirmPayment)
	api.POST("/contact", h.Contacts.Submit)

	auth := api.Group("", Identity(jwtSecret))
	{
		auth.POST("/orders", h.Orders.Create)
		auth.GET("/orders/mine", h.Orders.MyOrders)

		auth.POST("/coupons/claim", h.Rewards.Claim)
		auth.POST("/coupons/verify", h.Rewards.Verify)
		auth.GET("/coupons/claimed", h.Rewards.Claimed)
		auth.POST("/rewards/redeem-discount", h.Rewards.RedeemDiscount)
		auth.POST("/rewards/redeem-cashback", h.Rewards.RedeemCashback)
		auth.GET("/rewards/points", h.Rewards.Points)

		auth.POST("/products/:id/reviews", h.Products.AddReview)
		auth.PATCH("/products/:id/reviews", h.Products.UpdateReview)
		auth.DELETE("/products/:id/reviews/:reviewId", h.Products.DeleteReview)

		auth.POST("/cart/add", h.Carts.Add)
		auth.POST("/cart/update", h.Carts.Update)
		auth.POST("/cart/remove", h.Carts.Remove)
		auth.GET("/cart", h.Carts.Get)

		auth.POST("/addresses", h.Addresses.Add)
		auth.GET("/addresses", h.Addresses.List)
		auth.GET("/addresses/:id", h.Addresses.Get)
		auth.PUT("/addresses/:id", h.Addresses.Update)
		auth.DELETE("/addresses/:id", h.Addresses.Delete)
	}

	admin := api.Group("/admin", Identity(jwtSecret), RequireAdmin())
	{
		admin.GET("/orders", h.Orders.AdminList)
		admin.PUT("/orders/:id/status", h.Orders.UpdateStatus)
		admin.POST("/products", h.Products.Add)
		admin.DELETE("/products/:id", h.Products.Remove)
		admin.POST("/coupons", h.Rewards.InsertCoupons)
		admin.GET("/contacts", h.Contacts.List)
	}
}
