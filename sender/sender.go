package sender

import (
	"context"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender sends a single plain-text message. fromName is the display
// name shown alongside the sending mailbox.
type EmailSender interface {
	SendEmail(ctx context.Context, fromName, to, subject, body string) (SendResult, error)
}
