package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"checkout-service/ledger"
	"checkout-service/models"

	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

const eventCheckoutCompleted = "checkout.session.completed"

// OrderService ingests Stripe webhook events and resolves paid sessions for
// the confirmation page.
type OrderService interface {
	// HandleEvent runs the webhook pipeline over the raw request bytes.
	// A nil return means the event was handled (or deliberately ignored)
	// and Stripe should receive a 200.
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) *ServiceError
	GetOrderStatus(ctx context.Context, sessionID string) (*models.OrderStatus, *ServiceError)
}

type orderServiceImpl struct {
	stripe   StripeClient
	notifier NotificationService
	ledger   ledger.Ledger
	logger   *zap.Logger
}

func NewOrderService(stripeClient StripeClient, notifier NotificationService, eventLedger ledger.Ledger, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		stripe:   stripeClient,
		notifier: notifier,
		ledger:   eventLedger,
		logger:   logger,
	}
}

func (s *orderServiceImpl) HandleEvent(ctx context.Context, payload []byte, sigHeader string) *ServiceError {
	event, err := s.stripe.VerifyEvent(payload, sigHeader)
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusBadRequest, Message: "invalid webhook signature"}
	}

	if string(event.Type) != eventCheckoutCompleted {
		s.logger.Info("Ignoring webhook event type",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
		)
		return nil
	}

	first, err := s.ledger.MarkProcessed(ctx, event.ID)
	if err != nil {
		// Ledger trouble must not block fulfillment; worst case is a
		// duplicate email.
		s.logger.Error("Event ledger check failed", zap.String("event_id", event.ID), zap.Error(err))
	} else if !first {
		s.logger.Info("Skipping already-processed webhook event", zap.String("event_id", event.ID))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		s.logger.Error("Failed to unmarshal checkout session",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return nil
	}

	if sess.PaymentIntent == nil || sess.PaymentIntent.ID == "" {
		s.logger.Warn("Checkout session has no payment intent",
			zap.String("event_id", event.ID),
			zap.String("session_id", sess.ID),
		)
		return nil
	}

	// The order metadata rides on the payment intent, so a secondary lookup
	// is required. A failure here is recoverable: release the ledger entry
	// and let Stripe's redelivery retry the whole event.
	pi, err := s.stripe.GetPaymentIntent(ctx, sess.PaymentIntent.ID)
	if err != nil {
		s.ledger.Forget(ctx, event.ID)
		s.logger.Error("Payment intent retrieval failed",
			zap.String("event_id", event.ID),
			zap.String("payment_intent_id", sess.PaymentIntent.ID),
			zap.Error(err),
		)
		return &ServiceError{StatusCode: http.StatusBadGateway, Message: "payment intent lookup failed"}
	}

	order := &models.OrderRecord{
		Name:        pi.Metadata["name"],
		Email:       sess.CustomerEmail,
		EventNumber: pi.Metadata["event_number"],
		Age21:       pi.Metadata["age21"] == "true",
		Amount:      float64(sess.AmountTotal) / 100,
		SessionID:   sess.ID,
	}

	s.logger.Info("Processing paid checkout session",
		zap.String("event_id", event.ID),
		zap.String("session_id", sess.ID),
		zap.String("event_number", order.EventNumber),
	)

	s.notifier.NotifyOrderPaid(ctx, order)
	return nil
}

func (s *orderServiceImpl) GetOrderStatus(ctx context.Context, sessionID string) (*models.OrderStatus, *ServiceError) {
	sess, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "order not found"}
		}
		s.logger.Error("Checkout session retrieval failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "order lookup failed"}
	}

	status := &models.OrderStatus{
		Name:          "Customer",
		EventNumber:   "N/A",
		Amount:        float64(sess.AmountTotal) / 100,
		PaymentStatus: string(sess.PaymentStatus),
	}

	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		pi, err := s.stripe.GetPaymentIntent(ctx, sess.PaymentIntent.ID)
		if err != nil {
			s.logger.Error("Payment intent retrieval failed",
				zap.String("session_id", sessionID),
				zap.String("payment_intent_id", sess.PaymentIntent.ID),
				zap.Error(err),
			)
			return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "order lookup failed"}
		}
		if name := pi.Metadata["name"]; name != "" {
			status.Name = name
		}
		if eventNumber := pi.Metadata["event_number"]; eventNumber != "" {
			status.EventNumber = eventNumber
		}
	}

	return status, nil
}
