package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hallbooking/internal/domain/models"
	"hallbooking/internal/http/middleware"
	"hallbooking/internal/notify"
	"hallbooking/internal/payments/yoco"
	"hallbooking/internal/repositories"
	"hallbooking/internal/services"
)

// PaymentHandler exposes the checkout handoff and the payment callback.
type PaymentHandler struct {
	Bookings   repositories.BookingRepository
	Gateway    *yoco.Client
	Mailer     *notify.Client
	Cache      *redis.Client
	SiteURL    string
	FromEmail  string
	AdminEmail string
}

func (h PaymentHandler) service(c *gin.Context) services.PaymentService {
	reqID := middleware.GetRequestID(c)
	return services.PaymentService{
		BookingRepo: h.Bookings,
		Gateway:     h.Gateway,
		SiteURL:     h.SiteURL,
		RequestID:   reqID,
		NotifySvc: services.NotificationService{
			Mailer:     h.Mailer,
			FromEmail:  h.FromEmail,
			AdminEmail: h.AdminEmail,
			RequestID:  reqID,
		},
		Availability: services.AvailabilityService{
			BookingRepo: h.Bookings,
			Cache:       h.Cache,
			RequestID:   reqID,
		},
	}
}

// CreateCheckout handles POST /api/payments/checkout.
func (h PaymentHandler) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	resp, err := h.service(c).InitiateCheckout(c.Request.Context(), req, rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Callback handles POST /api/payments/callback with the inline gateway
// result: {"id": "..."} confirms, {"error": {...}} reverts to draft.
func (h PaymentHandler) Callback(c *gin.Context) {
	var cb models.PaymentCallback
	if !BindJSONOrError(c, &cb) {
		return
	}

	rc := middleware.GetRequestContext(c)
	booking, err := h.service(c).HandleCallback(c.Request.Context(), cb, rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
