package controllers

import (
	"io"
	"net/http"

	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	Orders services.OrderService
	Logger *zap.Logger
}

func NewOrderController(orders services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Logger: logger}
}

// StripeWebhook receives signed Stripe events. The body is read raw before
// any JSON binding because the signature covers the exact bytes.
func (oc *OrderController) StripeWebhook(c *gin.Context) {
	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		c.String(http.StatusBadRequest, "Missing Stripe signature")
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		oc.Logger.Warn("Failed to read webhook body", zap.Error(err))
		c.String(http.StatusBadRequest, "unable to read request body")
		return
	}

	if svcErr := oc.Orders.HandleEvent(c.Request.Context(), payload, sigHeader); svcErr != nil {
		c.String(svcErr.StatusCode, svcErr.Message)
		return
	}

	c.String(http.StatusOK, "ok")
}

// GetOrder returns the confirmation-page view of a checkout session.
func (oc *OrderController) GetOrder(c *gin.Context) {
	status, svcErr := oc.Orders.GetOrderStatus(c.Request.Context(), c.Param("session_id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, status)
}
