package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"checkout-service/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// CheckoutService creates hosted-payment sessions for validated buyer input.
type CheckoutService interface {
	CreateSession(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutSession, *ServiceError)
}

type checkoutServiceImpl struct {
	stripe  StripeClient
	priceID string
	baseURL string
	logger  *zap.Logger
}

func NewCheckoutService(stripeClient StripeClient, priceID, baseURL string, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{
		stripe:  stripeClient,
		priceID: priceID,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutSession, *ServiceError) {
	// The key is scoped per call attempt: a transport-level retry of this
	// request reuses it, while a fresh submission for the same event gets a
	// fresh session.
	idempotencyKey := fmt.Sprintf("%s:%s", req.EventNumber, uuid.NewString())

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.baseURL + "/thank-you?sid={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.baseURL + "/"),
		// Metadata rides on the payment intent, not the session, so it
		// survives into the webhook's retrieval step.
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"name":         req.Name,
				"event_number": req.EventNumber,
				"age21":        strconv.FormatBool(*req.Age21),
			},
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(idempotencyKey)

	sess, err := s.stripe.CreateCheckoutSession(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			s.logger.Error("Stripe session create failed",
				zap.String("event_number", req.EventNumber),
				zap.String("code", string(stripeErr.Code)),
				zap.Error(err),
			)
			return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Payment processing error"}
		}
		s.logger.Error("Checkout session create failed",
			zap.String("event_number", req.EventNumber),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create checkout session"}
	}

	return &models.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
