package models

// CheckoutRequest is the payment initiation payload from the client.
type CheckoutRequest struct {
	BookingID     int64   `json:"bookingId"`
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
}

// CheckoutResponse is returned after a checkout session is created. The
// redirect URL is empty when the gateway expects an inline (popup) flow.
type CheckoutResponse struct {
	CheckoutID  string `json:"checkoutId"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Amount      int64  `json:"amount"` // cents
	Currency    string `json:"currency"`
}

// PaymentCallback carries the gateway's inline result. Exactly one of
// PaymentReference or Error is set.
type PaymentCallback struct {
	BookingID        int64         `json:"bookingId"`
	PaymentReference string        `json:"id,omitempty"`
	Error            *PaymentError `json:"error,omitempty"`
}

// PaymentError describes a failed payment attempt.
type PaymentError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ConfirmationNotice is the fire-and-forget notification payload sent after
// a booking is confirmed.
type ConfirmationNotice struct {
	BookingID        int64  `json:"bookingId"`
	BookingReference string `json:"bookingReference"`
}
