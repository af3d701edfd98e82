package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"hallbooking/internal/domain/models"
	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// DocsService renders a completed booking as the printable hall booking
// form the office keeps on file.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string

	// Loader overrides the repository lookup in tests.
	Loader func(ctx context.Context, bookingID int64) (models.HallBooking, error)
}

func (s DocsService) load(ctx context.Context, bookingID int64) (models.HallBooking, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	return s.BookingRepo.GetByID(ctx, bookingID)
}

// GenerateBookingForm returns the PDF bytes and a download filename.
func (s DocsService) GenerateBookingForm(ctx context.Context, bookingID int64) ([]byte, string, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hall Booking Form", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "HALL BOOKING FORM")
	pdf.Ln(12)

	ref := safe(b.BookingReference, fmt.Sprintf("#%d", b.ID))
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Reference : "+ref)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status    : "+string(b.Status))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	section := func(title string, lines []string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.Cell(0, 6, l)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	section("Applicant", []string{
		"Name           : " + safe(strings.TrimSpace(b.ApplicantName+" "+b.ApplicantSurname), "-"),
		"Email          : " + safe(b.ApplicantEmail, "-"),
		"Phone          : " + safe(b.ApplicantPhone, "-"),
		"Address        : " + safe(b.ApplicantAddress, "-"),
		"Estate Address : " + safe(b.EstateAddress, "-"),
	})

	section("Event", []string{
		"Type     : " + safe(b.EventType, "-"),
		"Date     : " + safe(b.EventDate, "-"),
		"Time     : " + safe(b.EventStartTime, "-") + " - " + safe(b.EventEndTime, "-"),
		fmt.Sprintf("Guests   : %d", b.TotalGuests),
		fmt.Sprintf("Vehicles : %d", b.NumberOfVehicles),
		fmt.Sprintf("Tables   : %d   Chairs : %d", b.TablesRequired, b.ChairsRequired),
	})

	section("Refund Bank Details", []string{
		"Account Holder : " + safe(b.BankAccountHolder, "-"),
		"Bank           : " + safe(b.BankName, "-"),
		"Branch Code    : " + safe(b.BankBranchCode, "-"),
		"Account Number : " + safe(b.BankAccountNumber, "-"),
	})

	accepted := "not accepted"
	if b.TermsAccepted {
		accepted = strings.TrimSpace("accepted " + b.TermsAcceptedAt)
	}
	section("Terms and Conditions (version "+safe(b.TermsVersion, models.TermsVersion)+")", []string{
		"Initials : " + safe(b.TermsPage1Initial, "-") + " / " + safe(b.TermsPage2Initial, "-") +
			" / " + safe(b.TermsPage3Initial, "-") + " / " + safe(b.TermsPage4Initial, "-"),
		"Accepted : " + accepted,
	})

	section("Payment", []string{
		"Rental Fee       : " + utils.FormatRands(b.RentalFee),
		"Security Deposit : " + utils.FormatRands(b.DepositAmount),
		"Total            : " + utils.FormatRands(b.TotalAmount),
		"Payment Status   : " + string(b.PaymentStatus),
		"Payment Ref      : " + safe(b.PaymentReference, "-"),
	})

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The security deposit is refunded within 7 working days after inspection. All functions must end by "+models.CurfewTime+".", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render booking form: %w", err)
	}

	utils.LogEvent(s.RequestID, "docs", "booking_form_generated", "booking_id="+fmt.Sprint(bookingID))
	return buf.Bytes(), "HALL_BOOKING_" + safeFilenamePart(ref) + ".pdf", nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", "#", "")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
