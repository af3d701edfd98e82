package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hallbooking/internal/domain/models"
	"hallbooking/internal/notify"
	"hallbooking/internal/utils"
)

// NotificationService sends the booking confirmation email to the
// applicant with a copy to the office. It is best-effort throughout:
// callers log the returned error and never let it block a confirmation.
type NotificationService struct {
	Mailer     *notify.Client
	FromEmail  string
	AdminEmail string
	RequestID  string

	// Send overrides the mail call in tests.
	Send func(context.Context, notify.Message) error
}

func (s NotificationService) send(ctx context.Context, msg notify.Message) error {
	if s.Send != nil {
		return s.Send(ctx, msg)
	}
	if !s.Mailer.Enabled() {
		utils.LogEvent(s.RequestID, "notify", "skipped", "mailer not configured")
		return nil
	}
	return s.Mailer.Send(ctx, msg)
}

// SendConfirmation emails the applicant and the office after payment.
func (s NotificationService) SendConfirmation(ctx context.Context, b models.HallBooking) error {
	if b.ApplicantEmail == "" {
		return fmt.Errorf("booking %d has no applicant email", b.ID)
	}

	text := confirmationText(b)
	subject := "Hall Booking Confirmed - " + b.BookingReference

	if err := s.send(ctx, notify.Message{
		From:    s.FromEmail,
		To:      []string{b.ApplicantEmail},
		Subject: subject,
		Text:    text,
	}); err != nil {
		return err
	}

	if s.AdminEmail != "" {
		if err := s.send(ctx, notify.Message{
			From:    s.FromEmail,
			To:      []string{s.AdminEmail},
			Subject: "NEW HALL BOOKING: " + b.BookingReference + " - " + b.ApplicantName,
			Text:    text,
		}); err != nil {
			return err
		}
	}

	utils.LogEvent(s.RequestID, "notify", "confirmation_sent", "booking_id="+strconv.FormatInt(b.ID, 10))
	return nil
}

func confirmationText(b models.HallBooking) string {
	var sb strings.Builder
	sb.WriteString("Hall Booking Confirmation\n\n")
	sb.WriteString("Dear " + b.ApplicantName + " " + b.ApplicantSurname + ",\n\n")
	sb.WriteString("Your payment has been processed and your booking is confirmed.\n\n")
	sb.WriteString("Booking Reference: " + b.BookingReference + "\n\n")
	sb.WriteString("EVENT DETAILS:\n")
	sb.WriteString("- Event Type: " + b.EventType + "\n")
	sb.WriteString("- Event Date: " + b.EventDate + "\n")
	sb.WriteString("- Event Time: " + b.EventStartTime + " - " + b.EventEndTime + "\n")
	sb.WriteString(fmt.Sprintf("- Guests: %d\n", b.TotalGuests))
	sb.WriteString(fmt.Sprintf("- Vehicles: %d\n\n", b.NumberOfVehicles))
	sb.WriteString("PAYMENT SUMMARY:\n")
	sb.WriteString("- Hall Rental Fee: " + utils.FormatRands(b.RentalFee) + "\n")
	sb.WriteString("- Security Deposit: " + utils.FormatRands(b.DepositAmount) + "\n")
	sb.WriteString("- Total Paid: " + utils.FormatRands(b.TotalAmount) + "\n\n")
	sb.WriteString("The deposit is refunded within 7 working days after inspection.\n")
	sb.WriteString("Functions must end by " + models.CurfewTime + ".\n")
	return sb.String()
}
