package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/http/middleware"
	"hallbooking/internal/notify"
	"hallbooking/internal/repositories"
	"hallbooking/internal/services"
	"hallbooking/internal/utils"
)

// AdminHandler carries the office-side booking operations.
type AdminHandler struct {
	Bookings      repositories.BookingRepository
	Mailer        *notify.Client
	Cache         *redis.Client
	FromEmail     string
	AdminEmail    string
	StaleDraftAge time.Duration
}

// Approve handles PUT /api/admin/hall-bookings/:id/approve. It confirms a
// booking stuck in payment_processing when the gateway result arrived
// out-of-band, assigning a booking reference if missing.
func (h AdminHandler) Approve(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !booking.Status.CanTransitionTo(models.StatusConfirmed) {
		RespondDomainError(c, domain.ConflictError{
			Resource: "booking",
			Msg:      "only bookings awaiting payment can be approved",
		})
		return
	}

	paymentRef := booking.PaymentReference
	if paymentRef == "" {
		paymentRef = "manual-approval"
	}
	ref := booking.BookingReference
	if ref == "" {
		ref = utils.NewBookingReference()
	}
	now := utils.NowUTC()
	if err := h.Bookings.ConfirmPayment(c.Request.Context(), id, paymentRef, ref, now); err != nil {
		RespondDomainError(c, err)
		return
	}

	booking.Status = models.StatusConfirmed
	booking.PaymentStatus = models.PaymentPaid
	booking.PaymentReference = paymentRef
	booking.BookingReference = ref
	booking.ConfirmedAt = utils.Timestamp(now)

	avail := services.AvailabilityService{
		BookingRepo: h.Bookings,
		Cache:       h.Cache,
		RequestID:   middleware.GetRequestID(c),
	}
	avail.InvalidateDate(c.Request.Context(), booking.EventDate)

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Reject handles PUT /api/admin/hall-bookings/:id/reject. Only confirmed
// bookings can be rejected.
func (h AdminHandler) Reject(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !booking.Status.CanTransitionTo(models.StatusRejected) {
		RespondDomainError(c, domain.ConflictError{
			Resource: "booking",
			Msg:      "only confirmed bookings can be rejected",
		})
		return
	}

	if err := h.Bookings.UpdateStatus(c.Request.Context(), id, models.StatusRejected, booking.PaymentStatus); err != nil {
		RespondDomainError(c, err)
		return
	}
	booking.Status = models.StatusRejected
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ResendConfirmation handles POST /api/admin/hall-bookings/:id/resend-confirmation.
func (h AdminHandler) ResendConfirmation(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.Status != models.StatusConfirmed {
		RespondDomainError(c, domain.ConflictError{Resource: "booking", Msg: "booking is not confirmed"})
		return
	}

	svc := services.NotificationService{
		Mailer:     h.Mailer,
		FromEmail:  h.FromEmail,
		AdminEmail: h.AdminEmail,
		RequestID:  middleware.GetRequestID(c),
	}
	if err := svc.SendConfirmation(c.Request.Context(), booking); err != nil {
		RespondError(c, http.StatusBadGateway, "failed to send confirmation email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "confirmation email sent"})
}

// CleanupDrafts handles DELETE /api/admin/hall-bookings/stale-drafts.
func (h AdminHandler) CleanupDrafts(c *gin.Context) {
	svc := services.CleanupService{
		BookingRepo: h.Bookings,
		MaxAge:      h.StaleDraftAge,
		RequestID:   middleware.GetRequestID(c),
	}
	removed, err := svc.RemoveStaleDrafts(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
