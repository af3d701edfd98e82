package models

// Validation limits enforced by the booking steps. The curfew is a hall
// rule: functions must end by 23:00.
const (
	MaxGuests   = 50
	MinGuests   = 1
	MaxVehicles = 30
	MinVehicles = 0

	CurfewTime = "23:00"

	RentalFee     = 1500.00
	DepositAmount = 1000.00
	TotalAmount   = 2500.00

	TermsVersion = "2025-01"
)

// HallBooking is one booking record. Mutable while status is draft; treated
// as immutable once confirmed.
type HallBooking struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	BookingReference string        `json:"booking_reference"`
	Status           BookingStatus `json:"status"`

	// Applicant
	ApplicantName    string `json:"applicant_name"`
	ApplicantSurname string `json:"applicant_surname"`
	ApplicantAddress string `json:"applicant_address"`
	ApplicantPhone   string `json:"applicant_phone"`
	ApplicantEmail   string `json:"applicant_email"`
	IsEstateResident bool   `json:"is_estate_resident"`
	EstateAddress    string `json:"estate_address"`

	// Event
	EventDate        string `json:"event_date"`       // YYYY-MM-DD
	EventStartTime   string `json:"event_start_time"` // HH:MM
	EventEndTime     string `json:"event_end_time"`   // HH:MM
	EventType        string `json:"event_type"`
	EventDescription string `json:"event_description"`
	TotalGuests      int    `json:"total_guests"`
	NumberOfVehicles int    `json:"number_of_vehicles"`
	TablesRequired   int    `json:"tables_required"`
	ChairsRequired   int    `json:"chairs_required"`

	// Bank details for deposit refund
	BankAccountHolder    string `json:"bank_account_holder"`
	BankName             string `json:"bank_name"`
	BankBranchCode       string `json:"bank_branch_code"`
	BankAccountNumber    string `json:"bank_account_number"`
	BankProofDocumentURL string `json:"bank_proof_document_url"`

	// Music & special requests
	WillPlayMusic       bool   `json:"will_play_music"`
	SamroSampraProofURL string `json:"samro_sampra_proof_url"`
	SpecialRequests     string `json:"special_requests"`

	// Terms & conditions
	TermsAccepted     bool   `json:"terms_accepted"`
	TermsAcceptedAt   string `json:"terms_accepted_at"`
	TermsVersion      string `json:"terms_version"`
	TermsPage1Initial string `json:"terms_page_1_initial"`
	TermsPage2Initial string `json:"terms_page_2_initial"`
	TermsPage3Initial string `json:"terms_page_3_initial"`
	TermsPage4Initial string `json:"terms_page_4_initial"`

	// Amounts (ZAR)
	TotalAmount   float64 `json:"total_amount"`
	RentalFee     float64 `json:"rental_fee"`
	DepositAmount float64 `json:"deposit_amount"`

	// Payment
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference string        `json:"payment_reference"`
	CheckoutID       string        `json:"checkout_id"`
	PaymentDate      string        `json:"payment_date"`
	ConfirmedAt      string        `json:"confirmed_at"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewDraft returns a booking with the defaults a fresh form starts from.
func NewDraft(userID int64) HallBooking {
	return HallBooking{
		UserID:           userID,
		Status:           StatusDraft,
		IsEstateResident: true,
		EventStartTime:   "10:00",
		EventEndTime:     "22:00",
		TotalGuests:      MinGuests,
		TermsVersion:     TermsVersion,
		TotalAmount:      TotalAmount,
		RentalFee:        RentalFee,
		DepositAmount:    DepositAmount,
		PaymentStatus:    PaymentPending,
	}
}
