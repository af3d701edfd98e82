package models

// BookingStatus represents the lifecycle state of a hall booking.
type BookingStatus string

const (
	StatusDraft             BookingStatus = "draft"
	StatusPaymentProcessing BookingStatus = "payment_processing"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusRejected          BookingStatus = "rejected"
)

// validTransitions defines the booking state machine. A failed payment
// returns the booking to draft so the customer can restart payment.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:             {StatusPaymentProcessing},
	StatusPaymentProcessing: {StatusConfirmed, StatusDraft},
	StatusConfirmed:         {StatusRejected},
	StatusRejected:          {},
}

// IsValid reports whether the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from this status to target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return true
	}
	return len(allowed) == 0
}

// Payable reports whether a checkout session may be created for this status.
func (s BookingStatus) Payable() bool {
	return s == StatusDraft
}

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)
