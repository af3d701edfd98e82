package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/http/middleware"
	"hallbooking/internal/notify"
	"hallbooking/internal/repositories"
	"hallbooking/internal/services"
)

// BookingHandler exposes the multi-step booking flow.
type BookingHandler struct {
	Bookings   repositories.BookingRepository
	Users      repositories.UserRepository
	Cache      *redis.Client
	CacheTTL   time.Duration
	Mailer     *notify.Client
	FromEmail  string
	AdminEmail string
}

func (h BookingHandler) flow(c *gin.Context) *services.BookingFlow {
	return &services.BookingFlow{
		BookingRepo: h.Bookings,
		UserRepo:    h.Users,
		RequestID:   middleware.GetRequestID(c),
	}
}

// Steps handles GET /api/hall-bookings/steps.
func (h BookingHandler) Steps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"steps": services.Steps})
}

// GetDraft handles GET /api/hall-bookings/draft. It resumes the caller's
// draft or creates a fresh one prefilled from the profile.
func (h BookingHandler) GetDraft(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	flow := h.flow(c)
	if err := flow.LoadOrCreateDraft(c.Request.Context(), rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": flow.Draft, "step": flow.Step})
}

type draftRequest struct {
	Booking models.HallBooking `json:"booking"`
	Step    int                `json:"step"`
}

// SaveDraft handles PUT /api/hall-bookings/draft. It persists the draft
// without step validation so partially filled forms survive a refresh.
func (h BookingHandler) SaveDraft(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var req draftRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	flow := h.flow(c)
	if err := flow.AdoptDraft(c.Request.Context(), req.Booking, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	flow.SetStep(req.Step)

	if err := flow.Save(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": flow.Draft, "step": flow.Step, "saved": true})
}

// Advance handles POST /api/hall-bookings/draft/advance. It validates the
// reported step, persists the draft and returns the next step. Validation
// failures leave the step unchanged.
func (h BookingHandler) Advance(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	var req draftRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	flow := h.flow(c)
	if err := flow.AdoptDraft(c.Request.Context(), req.Booking, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	flow.SetStep(req.Step)

	if err := flow.Advance(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": flow.Draft, "step": flow.Step})
}

// Availability handles GET /api/hall-bookings/availability?date=YYYY-MM-DD.
func (h BookingHandler) Availability(c *gin.Context) {
	svc := services.AvailabilityService{
		BookingRepo: h.Bookings,
		Cache:       h.Cache,
		TTL:         h.CacheTTL,
		RequestID:   middleware.GetRequestID(c),
	}
	date := c.Query("date")
	available, err := svc.DateAvailable(c.Request.Context(), date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "available": available})
}

// GetBooking handles GET /api/hall-bookings/:id. Owners see their own
// bookings; admins see all.
func (h BookingHandler) GetBooking(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}
	rc := middleware.GetRequestContext(c)

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusNotFound, "booking not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// BookingForm handles GET /api/hall-bookings/:id/form and streams the
// booking form PDF.
func (h BookingHandler) BookingForm(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}
	rc := middleware.GetRequestContext(c)

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusNotFound, "booking not found", nil)
		return
	}

	svc := services.DocsService{BookingRepo: h.Bookings, RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateBookingForm(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Confirmation handles POST /api/hall-bookings/:id/confirmation: re-sends
// the confirmation email for the caller's confirmed booking.
func (h BookingHandler) Confirmation(c *gin.Context) {
	id := PathID(c, "id")
	if id == 0 {
		return
	}
	rc := middleware.GetRequestContext(c)

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusNotFound, "booking not found", nil)
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

// List handles GET /api/admin/hall-bookings?status=&page=&page_size=.
func (h BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := models.BookingStatus(c.Query("status"))

	bookings, total, err := h.Bookings.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":  bookings,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
