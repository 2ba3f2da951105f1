package services

import (
	"context"
	"fmt"
	"strconv"

	"checkout-service/models"
	"checkout-service/sender"

	"go.uber.org/zap"
)

const (
	internalFromName = "Curation Orders"
	customerFromName = "Columbia Bartending"

	internalSubject = "New Alcohol Curation Order Paid"
	customerSubject = "Your Curated Alcohol List Order Confirmation"
)

// NotificationService dispatches the two order emails. Sends are best
// effort: each failure is logged with enough context to resend manually and
// never escalated, because the webhook caller cannot remediate a mail outage.
type NotificationService interface {
	NotifyOrderPaid(ctx context.Context, order *models.OrderRecord)
}

type notificationServiceImpl struct {
	email       sender.EmailSender
	notifyEmail string
	logger      *zap.Logger
}

func NewNotificationService(email sender.EmailSender, notifyEmail string, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{
		email:       email,
		notifyEmail: notifyEmail,
		logger:      logger,
	}
}

func (s *notificationServiceImpl) NotifyOrderPaid(ctx context.Context, order *models.OrderRecord) {
	amount := strconv.FormatFloat(order.Amount, 'f', -1, 64)

	internalBody := fmt.Sprintf(`A new order has been completed:

Name: %s
Email: %s
Event Number: %s
Age 21+: %s

Stripe Session ID: %s
Amount Paid: $%s
`, order.Name, order.Email, order.EventNumber, strconv.FormatBool(order.Age21), order.SessionID, amount)

	if _, err := s.email.SendEmail(ctx, internalFromName, s.notifyEmail, internalSubject, internalBody); err != nil {
		s.logger.Error("Internal order notification failed",
			zap.String("to", s.notifyEmail),
			zap.String("session_id", order.SessionID),
			zap.String("event_number", order.EventNumber),
			zap.String("amount", amount),
			zap.Error(err),
		)
	}

	if order.Email == "" {
		s.logger.Warn("No customer email on order, skipping confirmation",
			zap.String("session_id", order.SessionID),
			zap.String("event_number", order.EventNumber),
		)
		return
	}

	customerBody := fmt.Sprintf(`Hi %s,

Thank you for your order with Columbia Bartending!

We've received your payment of $%s.
Your Event Number is: %s.

We'll match your order to your event and handle logistics.
If you have any questions, just reply to this email.

- Columbia Bartending
`, order.Name, amount, order.EventNumber)

	if _, err := s.email.SendEmail(ctx, customerFromName, order.Email, customerSubject, customerBody); err != nil {
		s.logger.Error("Customer order confirmation failed",
			zap.String("to", order.Email),
			zap.String("session_id", order.SessionID),
			zap.String("event_number", order.EventNumber),
			zap.String("amount", amount),
			zap.Error(err),
		)
	}
}
