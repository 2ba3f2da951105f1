package routes

import (
	"net/http"

	"checkout-service/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cc *controllers.CheckoutController, oc *controllers.OrderController) {
	r.POST("/checkout", cc.CreateCheckout)

	// Stripe webhook (no auth, raw body)
	r.POST("/webhook", oc.StripeWebhook)

	r.GET("/orders/:session_id", oc.GetOrder)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
