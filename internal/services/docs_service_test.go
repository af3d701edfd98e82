package services

import (
	"context"
	"strings"
	"testing"

	"hallbooking/internal/domain/models"
)

func TestDocsServiceGenerateBookingForm(t *testing.T) {
	loader := func(_ context.Context, id int64) (models.HallBooking, error) {
		b := models.NewDraft(7)
		b.ID = id
		b.Status = models.StatusConfirmed
		b.PaymentStatus = models.PaymentPaid
		b.BookingReference = "HB-1735000000000-A1B2C"
		b.ApplicantName = "Thandi"
		b.ApplicantSurname = "Nkosi"
		b.ApplicantEmail = "thandi@example.com"
		b.EventType = "Birthday Party"
		b.EventDate = "2026-10-10"
		b.TotalGuests = 40
		return b, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateBookingForm(context.Background(), 42)
	if err != nil {
		t.Fatalf("GenerateBookingForm returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateBookingForm returned empty data")
	}
	if !strings.HasPrefix(filename, "HALL_BOOKING_HB-") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("HB 1/2:3"); got != "HB_1_2_3" {
		t.Fatalf("safeFilenamePart = %q", got)
	}
	if got := safeFilenamePart("  "); got != "NA" {
		t.Fatalf("safeFilenamePart empty = %q", got)
	}
}
