package controllers

import (
	"errors"
	"net/http"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout services.CheckoutService
	Logger   *zap.Logger
}

func NewCheckoutController(checkout services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Logger: logger}
}

// CreateCheckout validates buyer input and creates a hosted-payment session.
func (cc *CheckoutController) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationFields(err),
		})
		return
	}

	sess, svcErr := cc.Checkout.CreateSession(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "url": sess.URL})
}

// validationFields flattens binding errors into a field -> reason map so a
// single 400 lists every violation.
func validationFields(err error) map[string]string {
	fields := map[string]string{}
	var verrs validatorv10.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}
	fields["body"] = "invalid request body"
	return fields
}
