package services

import (
	"context"
	"fmt"
	"strconv"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/payments/yoco"
	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// PaymentService owns the payment handoff: creating a checkout session for
// a payable booking and resolving the gateway's inline callback.
//
// State machine: draft -> payment_processing -> {confirmed | draft}.
type PaymentService struct {
	BookingRepo  repositories.BookingRepository
	Gateway      *yoco.Client
	NotifySvc    NotificationService
	Availability AvailabilityService
	SiteURL      string
	RequestID    string

	// CreateCheckout overrides the gateway call in tests.
	CreateCheckout func(context.Context, yoco.CheckoutRequest) (yoco.Checkout, error)
}

func (s PaymentService) createCheckout(ctx context.Context, req yoco.CheckoutRequest) (yoco.Checkout, error) {
	if s.CreateCheckout != nil {
		return s.CreateCheckout(ctx, req)
	}
	return s.Gateway.CreateCheckout(ctx, req)
}

// InitiateCheckout verifies the booking is payable and owned by the
// caller, enforces the fixed booking amount, creates the gateway session
// and moves the booking into payment_processing.
func (s PaymentService) InitiateCheckout(ctx context.Context, req models.CheckoutRequest, rc domain.RequestContext) (models.CheckoutResponse, error) {
	if req.BookingID <= 0 {
		return models.CheckoutResponse{}, domain.ValidationError{Field: "bookingId", Msg: "missing booking id"}
	}

	booking, err := s.BookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return models.CheckoutResponse{}, err
	}
	if booking.UserID != rc.UserID && !rc.IsAdmin() {
		// Do not reveal other users' bookings.
		return models.CheckoutResponse{}, domain.NotFoundError{Resource: "booking"}
	}
	if !booking.Status.Payable() {
		return models.CheckoutResponse{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("status is %s, cannot process payment", booking.Status),
		}
	}
	// The fee schedule is fixed; never trust the stored row's amount, a
	// tampered draft must not buy a cheap confirmation.
	if req.Amount != models.TotalAmount {
		return models.CheckoutResponse{}, domain.ValidationError{
			Field: "amount",
			Msg:   fmt.Sprintf("booking fee must be exactly %s", utils.FormatRands(models.TotalAmount)),
		}
	}

	amountCents := utils.RandsToCents(req.Amount)
	checkout, err := s.createCheckout(ctx, yoco.CheckoutRequest{
		Amount:     amountCents,
		Currency:   "ZAR",
		SuccessURL: s.SiteURL + "/hall-booking/payment-success",
		CancelURL:  s.SiteURL + "/hall-booking/payment-cancelled",
		FailureURL: s.SiteURL + "/hall-booking/payment-failed",
		Metadata: map[string]string{
			"bookingId":     strconv.FormatInt(booking.ID, 10),
			"userId":        strconv.FormatInt(booking.UserID, 10),
			"bookingType":   "hall_booking",
			"eventDate":     booking.EventDate,
			"customerEmail": req.CustomerEmail,
			"customerName":  req.CustomerName,
		},
	})
	if err != nil {
		return models.CheckoutResponse{}, domain.PaymentError{Msg: "failed to create payment session", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "checkout_created",
		"booking_id="+strconv.FormatInt(booking.ID, 10)+" checkout_id="+checkout.ID)

	// Persisting the status transition is best-effort: the session exists
	// already, so the payment can still proceed.
	if err := s.BookingRepo.SetCheckout(ctx, booking.ID, checkout.ID); err != nil {
		utils.LogError(s.RequestID, "payment", "set_checkout", err)
	}

	return models.CheckoutResponse{
		CheckoutID:  checkout.ID,
		RedirectURL: checkout.RedirectURL,
		Amount:      amountCents,
		Currency:    "ZAR",
	}, nil
}

// HandleCallback resolves an inline payment result for the caller's own
// booking. Errors revert the booking to draft; a payment reference
// confirms it, assigns a booking reference and triggers the best-effort
// confirmation notification. Replayed callbacks against terminal states
// are rejected.
func (s PaymentService) HandleCallback(ctx context.Context, cb models.PaymentCallback, rc domain.RequestContext) (models.HallBooking, error) {
	if cb.BookingID <= 0 {
		return models.HallBooking{}, domain.ValidationError{Field: "bookingId", Msg: "missing booking id"}
	}

	booking, err := s.BookingRepo.GetByID(ctx, cb.BookingID)
	if err != nil {
		return models.HallBooking{}, err
	}
	if booking.UserID != rc.UserID && !rc.IsAdmin() {
		// Do not reveal other users' bookings.
		return models.HallBooking{}, domain.NotFoundError{Resource: "booking"}
	}

	if cb.Error != nil {
		// A draft is allowed here for the case where SetCheckout never
		// landed; anything else has no edge back to draft.
		if booking.Status != models.StatusDraft && !booking.Status.CanTransitionTo(models.StatusDraft) {
			return models.HallBooking{}, domain.ConflictError{
				Resource: "booking",
				Msg:      fmt.Sprintf("cannot fail payment for a %s booking", booking.Status),
			}
		}
		utils.LogEvent(s.RequestID, "payment", "callback_failed",
			"booking_id="+strconv.FormatInt(booking.ID, 10)+" reason="+cb.Error.Message)
		if err := s.BookingRepo.RevertToDraft(ctx, booking.ID); err != nil {
			return models.HallBooking{}, err
		}
		booking.Status = models.StatusDraft
		booking.PaymentStatus = models.PaymentFailed
		return booking, nil
	}

	if cb.PaymentReference == "" {
		return models.HallBooking{}, domain.ValidationError{Field: "id", Msg: "callback carries neither a reference nor an error"}
	}

	// Same draft allowance as above; confirmed and rejected bookings
	// cannot be re-confirmed by a replayed callback.
	if booking.Status != models.StatusDraft && !booking.Status.CanTransitionTo(models.StatusConfirmed) {
		return models.HallBooking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot confirm a %s booking", booking.Status),
		}
	}

	ref := booking.BookingReference
	if ref == "" {
		ref = utils.NewBookingReference()
	}
	now := utils.NowUTC()
	if err := s.BookingRepo.ConfirmPayment(ctx, booking.ID, cb.PaymentReference, ref, now); err != nil {
		return models.HallBooking{}, err
	}

	booking.Status = models.StatusConfirmed
	booking.PaymentStatus = models.PaymentPaid
	booking.PaymentReference = cb.PaymentReference
	booking.BookingReference = ref
	booking.PaymentDate = utils.Timestamp(now)
	booking.ConfirmedAt = utils.Timestamp(now)

	utils.LogEvent(s.RequestID, "payment", "confirmed",
		"booking_id="+strconv.FormatInt(booking.ID, 10)+" reference="+ref)

	// The date just became taken; drop the cached availability answer.
	s.Availability.InvalidateDate(ctx, booking.EventDate)

	// Best-effort: a failed email never rolls back a confirmed booking.
	if err := s.NotifySvc.SendConfirmation(ctx, booking); err != nil {
		utils.LogError(s.RequestID, "payment", "confirmation_notice", err)
	}

	return booking, nil
}
