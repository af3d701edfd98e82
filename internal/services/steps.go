package services

import (
	"fmt"
	"time"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/utils"
)

// Step ordinals of the booking form. The step index is a workflow concept
// only; it is never persisted with the draft.
const (
	StepVerification = 1
	StepApplicant    = 2
	StepEvent        = 3
	StepBank         = 4
	StepAdditional   = 5
	StepTerms        = 6
	StepReview       = 7
	StepPayment      = 8

	FirstStep = StepVerification
	LastStep  = StepPayment
)

// StepInfo describes one step for progress displays.
type StepInfo struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Steps = []StepInfo{
	{StepVerification, "Verification", "Login & estate resident verification"},
	{StepApplicant, "Applicant Details", "Your contact information"},
	{StepEvent, "Event Details", "Date, time, guests, and requirements"},
	{StepBank, "Bank Details", "For deposit refund after inspection"},
	{StepAdditional, "Additional Info", "Music licensing & special requests"},
	{StepTerms, "Terms & Conditions", "Review and accept all terms"},
	{StepReview, "Review", "Review your booking details"},
	{StepPayment, "Payment", "Pay the rental fee and deposit"},
}

// ValidateStep runs the predicate for one step against the draft. Each
// predicate is independent; ordering is enforced by the flow, not here.
func ValidateStep(step int, b models.HallBooking) error {
	switch step {
	case StepVerification:
		return validateVerification(b)
	case StepApplicant:
		return validateApplicant(b)
	case StepEvent:
		return validateEvent(b)
	case StepBank:
		return validateBank(b)
	case StepAdditional:
		return validateAdditional(b)
	case StepTerms:
		return validateTerms(b)
	case StepReview:
		return nil
	case StepPayment:
		return validatePayment(b)
	default:
		return domain.ValidationError{Field: "step", Msg: fmt.Sprintf("unknown step %d", step)}
	}
}

func validateVerification(b models.HallBooking) error {
	if b.UserID <= 0 {
		return domain.ValidationError{Field: "user_id", Msg: "login required to book the hall"}
	}
	return nil
}

func validateApplicant(b models.HallBooking) error {
	required := []struct{ field, value, msg string }{
		{"applicant_name", b.ApplicantName, "please enter your first name"},
		{"applicant_surname", b.ApplicantSurname, "please enter your surname"},
		{"applicant_email", b.ApplicantEmail, "please enter your email address"},
		{"applicant_phone", b.ApplicantPhone, "please enter your phone number"},
		{"applicant_address", b.ApplicantAddress, "please enter your contact address"},
		{"estate_address", b.EstateAddress, "please enter your estate address"},
	}
	for _, f := range required {
		if utils.TrimOrEmpty(f.value) == "" {
			return domain.ValidationError{Field: f.field, Msg: f.msg}
		}
	}
	if !utils.IsEmail(b.ApplicantEmail) {
		return domain.ValidationError{Field: "applicant_email", Msg: "please enter a valid email address"}
	}
	return nil
}

func validateEvent(b models.HallBooking) error {
	if b.EventDate == "" {
		return domain.ValidationError{Field: "event_date", Msg: "please select an event date"}
	}
	if b.EventStartTime == "" {
		return domain.ValidationError{Field: "event_start_time", Msg: "please select a start time"}
	}
	if b.EventEndTime == "" {
		return domain.ValidationError{Field: "event_end_time", Msg: "please select an end time"}
	}
	if b.EventType == "" {
		return domain.ValidationError{Field: "event_type", Msg: "please select an event type"}
	}

	if b.TotalGuests < models.MinGuests {
		return domain.ValidationError{Field: "total_guests", Msg: fmt.Sprintf("minimum %d guest required", models.MinGuests)}
	}
	if b.TotalGuests > models.MaxGuests {
		return domain.ValidationError{Field: "total_guests", Msg: fmt.Sprintf("maximum %d guests allowed", models.MaxGuests)}
	}
	if b.NumberOfVehicles < models.MinVehicles {
		return domain.ValidationError{Field: "number_of_vehicles", Msg: "vehicle count cannot be negative"}
	}
	if b.NumberOfVehicles > models.MaxVehicles {
		return domain.ValidationError{Field: "number_of_vehicles", Msg: fmt.Sprintf("maximum %d vehicles allowed", models.MaxVehicles)}
	}

	// Zero-padded HH:MM compares correctly as strings; the curfew itself
	// is allowed, one minute past it is not.
	if b.EventEndTime > models.CurfewTime {
		return domain.ValidationError{Field: "event_end_time", Msg: "functions must end by " + models.CurfewTime}
	}
	if b.EventStartTime >= b.EventEndTime {
		return domain.ValidationError{Field: "event_start_time", Msg: "start time must be before end time"}
	}

	eventDate, err := utils.ParseDate(b.EventDate)
	if err != nil {
		return domain.ValidationError{Field: "event_date", Msg: "event date must be YYYY-MM-DD"}
	}
	today := time.Now().In(time.Local)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	if eventDate.Before(today) {
		return domain.ValidationError{Field: "event_date", Msg: "event date must be in the future"}
	}
	return nil
}

func validateBank(b models.HallBooking) error {
	if utils.TrimOrEmpty(b.BankAccountHolder) == "" {
		return domain.ValidationError{Field: "bank_account_holder", Msg: "please enter the account holder name"}
	}
	if utils.TrimOrEmpty(b.BankName) == "" {
		return domain.ValidationError{Field: "bank_name", Msg: "please select your bank"}
	}
	if utils.TrimOrEmpty(b.BankBranchCode) == "" {
		return domain.ValidationError{Field: "bank_branch_code", Msg: "please enter the branch code"}
	}
	if utils.TrimOrEmpty(b.BankAccountNumber) == "" {
		return domain.ValidationError{Field: "bank_account_number", Msg: "please enter the account number"}
	}
	if utils.TrimOrEmpty(b.BankProofDocumentURL) == "" {
		return domain.ValidationError{Field: "bank_proof_document_url", Msg: "please upload proof of your bank account"}
	}
	if !utils.IsBranchCode(b.BankBranchCode) {
		return domain.ValidationError{Field: "bank_branch_code", Msg: "branch code should be 6 digits"}
	}
	return nil
}

func validateAdditional(b models.HallBooking) error {
	if b.WillPlayMusic && utils.TrimOrEmpty(b.SamroSampraProofURL) == "" {
		return domain.ValidationError{Field: "samro_sampra_proof_url", Msg: "music licence proof required when playing music"}
	}
	return nil
}

func validateTerms(b models.HallBooking) error {
	initials := []struct{ field, value string }{
		{"terms_page_1_initial", b.TermsPage1Initial},
		{"terms_page_2_initial", b.TermsPage2Initial},
		{"terms_page_3_initial", b.TermsPage3Initial},
		{"terms_page_4_initial", b.TermsPage4Initial},
	}
	for i, f := range initials {
		if utils.TrimOrEmpty(f.value) == "" {
			return domain.ValidationError{Field: f.field, Msg: fmt.Sprintf("please initial page %d of the terms and conditions", i+1)}
		}
	}
	if !b.TermsAccepted {
		return domain.ValidationError{Field: "terms_accepted", Msg: "you must accept all terms and conditions to continue"}
	}
	return nil
}

func validatePayment(b models.HallBooking) error {
	if b.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "draft booking not found, save your information first"}
	}
	return nil
}
