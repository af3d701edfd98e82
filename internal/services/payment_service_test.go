package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/notify"
	"hallbooking/internal/payments/yoco"
	"hallbooking/internal/repositories"
)

// bookingRows builds a single result row in the repository scan order.
func bookingRows(b models.HallBooking) *sqlmock.Rows {
	cols := []string{
		"id", "user_id", "booking_reference", "status",
		"applicant_name", "applicant_surname", "applicant_address",
		"applicant_phone", "applicant_email", "is_estate_resident", "estate_address",
		"event_date", "event_start_time", "event_end_time",
		"event_type", "event_description", "total_guests", "number_of_vehicles",
		"tables_required", "chairs_required",
		"bank_account_holder", "bank_name", "bank_branch_code",
		"bank_account_number", "bank_proof_document_url",
		"will_play_music", "samro_sampra_proof_url", "special_requests",
		"terms_accepted", "terms_accepted_at", "terms_version",
		"terms_page_1_initial", "terms_page_2_initial",
		"terms_page_3_initial", "terms_page_4_initial",
		"total_amount", "rental_fee", "deposit_amount",
		"payment_status", "payment_reference", "yoco_checkout_id",
		"payment_date", "confirmed_at",
		"created_at", "updated_at",
	}
	return sqlmock.NewRows(cols).AddRow(
		b.ID, b.UserID, b.BookingReference, string(b.Status),
		b.ApplicantName, b.ApplicantSurname, b.ApplicantAddress,
		b.ApplicantPhone, b.ApplicantEmail, b.IsEstateResident, b.EstateAddress,
		b.EventDate, b.EventStartTime, b.EventEndTime,
		b.EventType, b.EventDescription, b.TotalGuests, b.NumberOfVehicles,
		b.TablesRequired, b.ChairsRequired,
		b.BankAccountHolder, b.BankName, b.BankBranchCode,
		b.BankAccountNumber, b.BankProofDocumentURL,
		b.WillPlayMusic, b.SamroSampraProofURL, b.SpecialRequests,
		b.TermsAccepted, b.TermsAcceptedAt, b.TermsVersion,
		b.TermsPage1Initial, b.TermsPage2Initial,
		b.TermsPage3Initial, b.TermsPage4Initial,
		b.TotalAmount, b.RentalFee, b.DepositAmount,
		string(b.PaymentStatus), b.PaymentReference, b.CheckoutID,
		b.PaymentDate, b.ConfirmedAt,
		b.CreatedAt, b.UpdatedAt,
	)
}

func TestInitiateCheckoutRejectsWrongAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}, SiteURL: "https://example.com"}
	_, err = svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID: booking.ID,
		Amount:    100.00,
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wrong amount, got %v", err)
	}
}

func TestInitiateCheckoutRejectsOtherUsersBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
	}, domain.RequestContext{UserID: booking.UserID + 1})

	if !domain.IsNotFound(err) {
		t.Fatalf("foreign booking should look like not found, got %v", err)
	}
}

func TestInitiateCheckoutRejectsNonPayableStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusConfirmed
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsConflict(err) {
		t.Fatalf("confirmed booking should conflict, got %v", err)
	}
}

func TestInitiateCheckoutCreatesSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))
	mock.ExpectExec("UPDATE hall_bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var gotReq yoco.CheckoutRequest
	svc := PaymentService{
		BookingRepo: repositories.BookingRepository{DB: db},
		SiteURL:     "https://example.com",
		CreateCheckout: func(_ context.Context, req yoco.CheckoutRequest) (yoco.Checkout, error) {
			gotReq = req
			return yoco.Checkout{ID: "ch_123", RedirectURL: "https://pay.example.com/ch_123"}, nil
		},
	}

	resp, err := svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		CustomerEmail: booking.ApplicantEmail,
		CustomerName:  booking.ApplicantName,
	}, domain.RequestContext{UserID: booking.UserID})
	if err != nil {
		t.Fatalf("InitiateCheckout error: %v", err)
	}

	if resp.CheckoutID != "ch_123" || resp.RedirectURL == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Amount != 250000 || gotReq.Amount != 250000 {
		t.Fatalf("amount should be 250000 cents, got %d / %d", resp.Amount, gotReq.Amount)
	}
	if gotReq.Currency != "ZAR" {
		t.Fatalf("currency should be ZAR, got %q", gotReq.Currency)
	}
	if !strings.HasPrefix(gotReq.SuccessURL, "https://example.com/hall-booking/") {
		t.Fatalf("success url not derived from site url: %q", gotReq.SuccessURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitiateCheckoutGatewayFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{
		BookingRepo: repositories.BookingRepository{DB: db},
		CreateCheckout: func(context.Context, yoco.CheckoutRequest) (yoco.Checkout, error) {
			return yoco.Checkout{}, errors.New("gateway down")
		},
	}

	_, err = svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsPayment(err) {
		t.Fatalf("gateway failure should surface as payment error, got %v", err)
	}
}

func TestHandleCallbackErrorRevertsToDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusPaymentProcessing
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))
	mock.ExpectExec("UPDATE hall_bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	got, err := svc.HandleCallback(context.Background(), models.PaymentCallback{
		BookingID: booking.ID,
		Error:     &models.PaymentError{Code: "card_declined", Message: "card declined"},
	}, domain.RequestContext{UserID: booking.UserID})
	if err != nil {
		t.Fatalf("HandleCallback error: %v", err)
	}

	if got.Status != models.StatusDraft {
		t.Fatalf("failed payment should revert to draft, got %s", got.Status)
	}
	if got.PaymentStatus != models.PaymentFailed {
		t.Fatalf("payment status should be failed, got %s", got.PaymentStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHandleCallbackConfirmsAndNotifies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusPaymentProcessing
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))
	mock.ExpectExec("UPDATE hall_bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	var sent []notify.Message
	svc := PaymentService{
		BookingRepo: repositories.BookingRepository{DB: db},
		NotifySvc: NotificationService{
			FromEmail:  "bookings@example.com",
			AdminEmail: "office@example.com",
			Send: func(_ context.Context, msg notify.Message) error {
				sent = append(sent, msg)
				return nil
			},
		},
	}

	got, err := svc.HandleCallback(context.Background(), models.PaymentCallback{
		BookingID:        booking.ID,
		PaymentReference: "p_789",
	}, domain.RequestContext{UserID: booking.UserID})
	if err != nil {
		t.Fatalf("HandleCallback error: %v", err)
	}

	if got.Status != models.StatusConfirmed || got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("expected confirmed/paid, got %s/%s", got.Status, got.PaymentStatus)
	}
	if got.PaymentReference != "p_789" {
		t.Fatalf("payment reference not recorded: %q", got.PaymentReference)
	}
	if !strings.HasPrefix(got.BookingReference, "HB-") {
		t.Fatalf("booking reference should be assigned, got %q", got.BookingReference)
	}
	if got.ConfirmedAt == "" || got.PaymentDate == "" {
		t.Fatalf("confirmation timestamps missing")
	}
	if len(sent) != 2 {
		t.Fatalf("expected applicant and office emails, got %d", len(sent))
	}
	if sent[0].To[0] != booking.ApplicantEmail {
		t.Fatalf("first email should go to the applicant, got %v", sent[0].To)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHandleCallbackWithoutReferenceOrError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.HandleCallback(context.Background(), models.PaymentCallback{BookingID: booking.ID},
		domain.RequestContext{UserID: booking.UserID})
	if !domain.IsValidation(err) {
		t.Fatalf("empty callback should fail validation, got %v", err)
	}
}

func TestInitiateCheckoutIgnoresTamperedStoredAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.TotalAmount = 0.01
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.InitiateCheckout(context.Background(), models.CheckoutRequest{
		BookingID: booking.ID,
		Amount:    0.01,
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsValidation(err) {
		t.Fatalf("the fee schedule is fixed, a cheap stored amount must not pass, got %v", err)
	}
}

func TestHandleCallbackErrorOnConfirmedBookingRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusConfirmed
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.HandleCallback(context.Background(), models.PaymentCallback{
		BookingID: booking.ID,
		Error:     &models.PaymentError{Message: "card declined"},
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsConflict(err) {
		t.Fatalf("a confirmed booking must not revert to draft, got %v", err)
	}
	// No UPDATE may run against the confirmed row.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database write: %v", err)
	}
}

func TestHandleCallbackReferenceOnRejectedBookingRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusRejected
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.HandleCallback(context.Background(), models.PaymentCallback{
		BookingID:        booking.ID,
		PaymentReference: "p_replay",
	}, domain.RequestContext{UserID: booking.UserID})

	if !domain.IsConflict(err) {
		t.Fatalf("a rejected booking must not be re-confirmed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database write: %v", err)
	}
}

func TestHandleCallbackRejectsForeignBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	booking := completeBooking()
	booking.Status = models.StatusPaymentProcessing
	mock.ExpectQuery("SELECT(.+)FROM hall_bookings").
		WithArgs(booking.ID).
		WillReturnRows(bookingRows(booking))

	svc := PaymentService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, err = svc.HandleCallback(context.Background(), models.PaymentCallback{
		BookingID:        booking.ID,
		PaymentReference: "p_789",
	}, domain.RequestContext{UserID: booking.UserID + 1})

	if !domain.IsNotFound(err) {
		t.Fatalf("another user's callback should look like not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database write: %v", err)
	}
}
