package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "hallbooking/internal/config"
	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
)

// BookingRepository persists hall bookings. Upsert is keyed by primary key:
// insert when the id is zero, update otherwise.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// bookingColumns is the scan order shared by every SELECT in this file.
const bookingColumns = `
	id, user_id, COALESCE(booking_reference,''), status,
	COALESCE(applicant_name,''), COALESCE(applicant_surname,''), COALESCE(applicant_address,''),
	COALESCE(applicant_phone,''), COALESCE(applicant_email,''), is_estate_resident, COALESCE(estate_address,''),
	COALESCE(event_date,''), COALESCE(event_start_time,''), COALESCE(event_end_time,''),
	COALESCE(event_type,''), COALESCE(event_description,''), total_guests, number_of_vehicles,
	tables_required, chairs_required,
	COALESCE(bank_account_holder,''), COALESCE(bank_name,''), COALESCE(bank_branch_code,''),
	COALESCE(bank_account_number,''), COALESCE(bank_proof_document_url,''),
	will_play_music, COALESCE(samro_sampra_proof_url,''), COALESCE(special_requests,''),
	terms_accepted, COALESCE(terms_accepted_at,''), COALESCE(terms_version,''),
	COALESCE(terms_page_1_initial,''), COALESCE(terms_page_2_initial,''),
	COALESCE(terms_page_3_initial,''), COALESCE(terms_page_4_initial,''),
	total_amount, rental_fee, deposit_amount,
	COALESCE(payment_status,''), COALESCE(payment_reference,''), COALESCE(yoco_checkout_id,''),
	COALESCE(payment_date,''), COALESCE(confirmed_at,''),
	COALESCE(created_at,''), COALESCE(updated_at,'')`

func scanBooking(row interface{ Scan(...any) error }) (models.HallBooking, error) {
	var b models.HallBooking
	var status, paymentStatus string
	err := row.Scan(
		&b.ID, &b.UserID, &b.BookingReference, &status,
		&b.ApplicantName, &b.ApplicantSurname, &b.ApplicantAddress,
		&b.ApplicantPhone, &b.ApplicantEmail, &b.IsEstateResident, &b.EstateAddress,
		&b.EventDate, &b.EventStartTime, &b.EventEndTime,
		&b.EventType, &b.EventDescription, &b.TotalGuests, &b.NumberOfVehicles,
		&b.TablesRequired, &b.ChairsRequired,
		&b.BankAccountHolder, &b.BankName, &b.BankBranchCode,
		&b.BankAccountNumber, &b.BankProofDocumentURL,
		&b.WillPlayMusic, &b.SamroSampraProofURL, &b.SpecialRequests,
		&b.TermsAccepted, &b.TermsAcceptedAt, &b.TermsVersion,
		&b.TermsPage1Initial, &b.TermsPage2Initial,
		&b.TermsPage3Initial, &b.TermsPage4Initial,
		&b.TotalAmount, &b.RentalFee, &b.DepositAmount,
		&paymentStatus, &b.PaymentReference, &b.CheckoutID,
		&b.PaymentDate, &b.ConfirmedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return models.HallBooking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.PaymentStatus = models.PaymentStatus(paymentStatus)
	return b, nil
}

// FindDraftByUser returns the most recent draft-status booking for the
// user. A missing draft is not an error: found=false means the caller
// should start a fresh booking.
func (r BookingRepository) FindDraftByUser(ctx context.Context, userID int64) (models.HallBooking, bool, error) {
	if userID <= 0 {
		return models.HallBooking{}, false, domain.ValidationError{Field: "user_id", Msg: "must be positive"}
	}

	row := r.db().QueryRowContext(ctx, `
		SELECT`+bookingColumns+`
		FROM hall_bookings
		WHERE user_id=? AND status=?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, string(models.StatusDraft))

	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return models.HallBooking{}, false, nil
	}
	if err != nil {
		return models.HallBooking{}, false, err
	}
	return b, true, nil
}

// GetByID fetches a booking or a NotFoundError.
func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.HallBooking, error) {
	if id <= 0 {
		return models.HallBooking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	row := r.db().QueryRowContext(ctx, `
		SELECT`+bookingColumns+`
		FROM hall_bookings
		WHERE id=?
		LIMIT 1
	`, id)

	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return models.HallBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.HallBooking{}, err
	}
	return b, nil
}

// upsertFields maps columns to values for both INSERT and UPDATE so the two
// statements cannot drift apart.
func upsertFields(b models.HallBooking) ([]string, []any) {
	cols := []string{
		"user_id", "status",
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
		"payment_status",
	}
	vals := []any{
		b.UserID, string(b.Status),
		b.ApplicantName, b.ApplicantSurname, b.ApplicantAddress,
		b.ApplicantPhone, b.ApplicantEmail, b.IsEstateResident, b.EstateAddress,
		nullIfEmpty(b.EventDate), nullIfEmpty(b.EventStartTime), nullIfEmpty(b.EventEndTime),
		nullIfEmpty(b.EventType), nullIfEmpty(b.EventDescription), b.TotalGuests, b.NumberOfVehicles,
		b.TablesRequired, b.ChairsRequired,
		nullIfEmpty(b.BankAccountHolder), nullIfEmpty(b.BankName), nullIfEmpty(b.BankBranchCode),
		nullIfEmpty(b.BankAccountNumber), nullIfEmpty(b.BankProofDocumentURL),
		b.WillPlayMusic, nullIfEmpty(b.SamroSampraProofURL), nullIfEmpty(b.SpecialRequests),
		b.TermsAccepted, nullIfEmpty(b.TermsAcceptedAt), b.TermsVersion,
		nullIfEmpty(b.TermsPage1Initial), nullIfEmpty(b.TermsPage2Initial),
		nullIfEmpty(b.TermsPage3Initial), nullIfEmpty(b.TermsPage4Initial),
		b.TotalAmount, b.RentalFee, b.DepositAmount,
		string(b.PaymentStatus),
	}
	return cols, vals
}

// nullIfEmpty stores optional strings as NULL instead of wiping existing
// data with empty strings.
func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// Upsert writes the draft through to the database. Inserts capture the new
// primary key on the model so later saves become updates.
func (r BookingRepository) Upsert(ctx context.Context, b *models.HallBooking) error {
	if b == nil {
		return fmt.Errorf("nil booking")
	}
	cols, vals := upsertFields(*b)

	if b.ID <= 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
		query := fmt.Sprintf(
			"INSERT INTO hall_bookings (%s, created_at, updated_at) VALUES (%s, NOW(), NOW())",
			strings.Join(cols, ", "), placeholders,
		)
		res, err := r.db().ExecContext(ctx, query, vals...)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		b.ID = id
		return nil
	}

	sets := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+"=?")
	}
	sets = append(sets, "updated_at=NOW()")
	query := "UPDATE hall_bookings SET " + strings.Join(sets, ", ") + " WHERE id=?"
	_, err := r.db().ExecContext(ctx, query, append(vals, b.ID)...)
	return err
}

// UpdateStatus sets the workflow status (and optionally the payment status).
func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus, paymentStatus models.PaymentStatus) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	sets := []string{"status=?", "updated_at=NOW()"}
	args := []any{string(status)}
	if paymentStatus != "" {
		sets = append(sets, "payment_status=?")
		args = append(args, string(paymentStatus))
	}
	args = append(args, id)
	_, err := r.db().ExecContext(ctx, "UPDATE hall_bookings SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// SetCheckout stores the gateway checkout id and moves the booking into
// payment_processing.
func (r BookingRepository) SetCheckout(ctx context.Context, id int64, checkoutID string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	_, err := r.db().ExecContext(ctx, `
		UPDATE hall_bookings
		SET status=?, yoco_checkout_id=?, updated_at=NOW()
		WHERE id=?
	`, string(models.StatusPaymentProcessing), checkoutID, id)
	return err
}

// ConfirmPayment marks the booking confirmed and records the payment
// reference, booking reference and timestamps.
func (r BookingRepository) ConfirmPayment(ctx context.Context, id int64, paymentRef, bookingRef string, now time.Time) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	ts := now.UTC().Format(time.RFC3339)
	_, err := r.db().ExecContext(ctx, `
		UPDATE hall_bookings
		SET status=?, payment_status=?, payment_reference=?, booking_reference=?,
		    payment_date=?, confirmed_at=?, updated_at=NOW()
		WHERE id=?
	`, string(models.StatusConfirmed), string(models.PaymentPaid), paymentRef, bookingRef, ts, ts, id)
	return err
}

// RevertToDraft returns a booking to draft after a failed payment attempt.
func (r BookingRepository) RevertToDraft(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	_, err := r.db().ExecContext(ctx, `
		UPDATE hall_bookings
		SET status=?, payment_status=?, updated_at=NOW()
		WHERE id=?
	`, string(models.StatusDraft), string(models.PaymentFailed), id)
	return err
}

// CountActiveOnDate counts bookings that block a date: anything confirmed
// or mid-payment on that event date.
func (r BookingRepository) CountActiveOnDate(ctx context.Context, date string) (int, error) {
	var count int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM hall_bookings
		WHERE event_date=? AND status IN (?, ?)
	`, date, string(models.StatusConfirmed), string(models.StatusPaymentProcessing)).Scan(&count)
	return count, err
}

// List returns bookings for the admin view, newest first, optionally
// filtered by status.
func (r BookingRepository) List(ctx context.Context, status models.BookingStatus, page, pageSize int) ([]models.HallBooking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := ""
	args := []any{}
	if status != "" {
		where = " WHERE status=?"
		args = append(args, string(status))
	}

	var total int
	if err := r.db().QueryRowContext(ctx, "SELECT COUNT(*) FROM hall_bookings"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + bookingColumns + " FROM hall_bookings" + where +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db().QueryContext(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.HallBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// DeleteStaleDrafts removes draft rows untouched since the cutoff.
func (r BookingRepository) DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		DELETE FROM hall_bookings
		WHERE status=? AND updated_at < ?
	`, string(models.StatusDraft), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
