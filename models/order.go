package models

// CheckoutRequest is the buyer-facing payload for POST /checkout.
// Age21 is a pointer so an explicit false still satisfies "required".
type CheckoutRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Email       string `json:"email" binding:"required,email"`
	EventNumber string `json:"event_number" binding:"required,min=1,max=80"`
	Age21       *bool  `json:"age21" binding:"required"`
}

// CheckoutSession is the opaque provider handle returned to the client.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// OrderRecord is built from a verified checkout completion event plus the
// metadata attached to its payment intent. It exists only for the duration
// of notification dispatch and is never persisted.
type OrderRecord struct {
	Name        string
	Email       string
	EventNumber string
	Age21       bool
	Amount      float64 // major units
	SessionID   string
}

// OrderStatus is the confirmation-page view of a paid session.
type OrderStatus struct {
	Name          string  `json:"name"`
	EventNumber   string  `json:"event_number"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"payment_status"`
}
