package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"checkout-service/models"
	"checkout-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

func validRequest() *models.CheckoutRequest {
	age21 := true
	return &models.CheckoutRequest{
		Name:        "Jane",
		Email:       "jane@example.com",
		EventNumber: "000H",
		Age21:       &age21,
	}
}

func TestCreateSession_BuildsProviderParams(t *testing.T) {
	sc := &mockStripeClient{
		createResult: &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"},
	}
	svc := services.NewCheckoutService(sc, "price_abc", "https://example.com", zap.NewNop())

	sess, svcErr := svc.CreateSession(context.Background(), validRequest())

	assert.Nil(t, svcErr)
	assert.Equal(t, "cs_test_123", sess.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", sess.URL)

	// Exactly one provider call per invocation.
	assert.Len(t, sc.created, 1)
	params := sc.created[0]
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "jane@example.com", *params.CustomerEmail)
	assert.Len(t, params.LineItems, 1)
	assert.Equal(t, "price_abc", *params.LineItems[0].Price)
	assert.Equal(t, int64(1), *params.LineItems[0].Quantity)
	assert.Equal(t, "https://example.com/thank-you?sid={CHECKOUT_SESSION_ID}", *params.SuccessURL)
	assert.Equal(t, "https://example.com/", *params.CancelURL)

	meta := params.PaymentIntentData.Metadata
	assert.Equal(t, "Jane", meta["name"])
	assert.Equal(t, "000H", meta["event_number"])
	assert.Equal(t, "true", meta["age21"])
}

func TestCreateSession_IdempotencyKeyScopedByEventNumber(t *testing.T) {
	sc := &mockStripeClient{createResult: &stripe.CheckoutSession{ID: "cs_1", URL: "u"}}
	svc := services.NewCheckoutService(sc, "price_abc", "https://example.com", zap.NewNop())

	_, _ = svc.CreateSession(context.Background(), validRequest())
	_, _ = svc.CreateSession(context.Background(), validRequest())

	assert.Len(t, sc.created, 2)
	key1 := *sc.created[0].IdempotencyKey
	key2 := *sc.created[1].IdempotencyKey
	assert.True(t, strings.HasPrefix(key1, "000H:"))
	assert.True(t, strings.HasPrefix(key2, "000H:"))
	// Each call attempt gets its own key.
	assert.NotEqual(t, key1, key2)
}

func TestCreateSession_StripeErrorIsBadGateway(t *testing.T) {
	sc := &mockStripeClient{createErr: &stripe.Error{Code: stripe.ErrorCodeRateLimit, Msg: "rate limited"}}
	svc := services.NewCheckoutService(sc, "price_abc", "https://example.com", zap.NewNop())

	sess, svcErr := svc.CreateSession(context.Background(), validRequest())

	assert.Nil(t, sess)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadGateway, svcErr.StatusCode)
	assert.Equal(t, "Payment processing error", svcErr.Message)
}

func TestCreateSession_UnexpectedErrorIsInternal(t *testing.T) {
	sc := &mockStripeClient{createErr: errors.New("connection reset")}
	svc := services.NewCheckoutService(sc, "price_abc", "https://example.com", zap.NewNop())

	sess, svcErr := svc.CreateSession(context.Background(), validRequest())

	assert.Nil(t, sess)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}
