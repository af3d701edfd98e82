package services

import (
	"testing"
	"time"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
)

// completeBooking returns a draft that passes every step predicate.
func completeBooking() models.HallBooking {
	b := models.NewDraft(7)
	b.ID = 42
	b.ApplicantName = "Thandi"
	b.ApplicantSurname = "Nkosi"
	b.ApplicantAddress = "12 Protea Street"
	b.ApplicantPhone = "0821234567"
	b.ApplicantEmail = "thandi@example.com"
	b.EstateAddress = "Unit 5, The Willows"
	b.EventDate = time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	b.EventStartTime = "10:00"
	b.EventEndTime = "22:00"
	b.EventType = "Birthday Party"
	b.TotalGuests = 40
	b.NumberOfVehicles = 10
	b.BankAccountHolder = "T Nkosi"
	b.BankName = "FNB"
	b.BankBranchCode = "250655"
	b.BankAccountNumber = "62012345678"
	b.BankProofDocumentURL = "https://files.example.com/proof.pdf"
	b.TermsAccepted = true
	b.TermsPage1Initial = "TN"
	b.TermsPage2Initial = "TN"
	b.TermsPage3Initial = "TN"
	b.TermsPage4Initial = "TN"
	return b
}

func TestValidateStepAllPass(t *testing.T) {
	b := completeBooking()
	for step := FirstStep; step <= LastStep; step++ {
		if err := ValidateStep(step, b); err != nil {
			t.Fatalf("step %d should pass: %v", step, err)
		}
	}
}

func TestValidateEventCurfew(t *testing.T) {
	b := completeBooking()

	b.EventEndTime = "23:00"
	if err := ValidateStep(StepEvent, b); err != nil {
		t.Fatalf("ending at the curfew should be allowed: %v", err)
	}

	b.EventEndTime = "23:01"
	err := ValidateStep(StepEvent, b)
	if !domain.IsValidation(err) {
		t.Fatalf("ending past the curfew should fail validation, got %v", err)
	}
}

func TestValidateEventGuestBounds(t *testing.T) {
	b := completeBooking()

	b.TotalGuests = models.MaxGuests
	if err := ValidateStep(StepEvent, b); err != nil {
		t.Fatalf("%d guests should be allowed: %v", models.MaxGuests, err)
	}

	b.TotalGuests = models.MaxGuests + 1
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for too many guests, got %v", err)
	}

	b.TotalGuests = 0
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero guests, got %v", err)
	}
}

func TestValidateEventVehicleBounds(t *testing.T) {
	b := completeBooking()

	b.NumberOfVehicles = models.MaxVehicles
	if err := ValidateStep(StepEvent, b); err != nil {
		t.Fatalf("%d vehicles should be allowed: %v", models.MaxVehicles, err)
	}

	b.NumberOfVehicles = models.MaxVehicles + 1
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for too many vehicles, got %v", err)
	}
}

func TestValidateEventTimesAndDate(t *testing.T) {
	b := completeBooking()

	b.EventStartTime = "22:00"
	b.EventEndTime = "22:00"
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("start equal to end should fail, got %v", err)
	}

	b = completeBooking()
	b.EventDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("past event date should fail, got %v", err)
	}

	b = completeBooking()
	b.EventDate = "not-a-date"
	if err := ValidateStep(StepEvent, b); !domain.IsValidation(err) {
		t.Fatalf("malformed date should fail, got %v", err)
	}
}

func TestValidateApplicant(t *testing.T) {
	b := completeBooking()
	b.ApplicantEmail = "not-an-email"
	if err := ValidateStep(StepApplicant, b); !domain.IsValidation(err) {
		t.Fatalf("bad email should fail, got %v", err)
	}

	b = completeBooking()
	b.ApplicantSurname = "  "
	if err := ValidateStep(StepApplicant, b); !domain.IsValidation(err) {
		t.Fatalf("blank surname should fail, got %v", err)
	}
}

func TestValidateBank(t *testing.T) {
	b := completeBooking()
	b.BankBranchCode = "12345"
	if err := ValidateStep(StepBank, b); !domain.IsValidation(err) {
		t.Fatalf("five digit branch code should fail, got %v", err)
	}

	b = completeBooking()
	b.BankBranchCode = "250 655"
	if err := ValidateStep(StepBank, b); err != nil {
		t.Fatalf("branch code with spaces should pass: %v", err)
	}

	b = completeBooking()
	b.BankProofDocumentURL = ""
	if err := ValidateStep(StepBank, b); !domain.IsValidation(err) {
		t.Fatalf("missing bank proof should fail, got %v", err)
	}
}

func TestValidateAdditionalMusicProof(t *testing.T) {
	b := completeBooking()
	b.WillPlayMusic = true
	if err := ValidateStep(StepAdditional, b); !domain.IsValidation(err) {
		t.Fatalf("music without licence proof should fail, got %v", err)
	}

	b.SamroSampraProofURL = "https://files.example.com/samro.pdf"
	if err := ValidateStep(StepAdditional, b); err != nil {
		t.Fatalf("music with licence proof should pass: %v", err)
	}
}

func TestValidateTerms(t *testing.T) {
	b := completeBooking()
	b.TermsPage3Initial = ""
	if err := ValidateStep(StepTerms, b); !domain.IsValidation(err) {
		t.Fatalf("missing initial should fail, got %v", err)
	}

	b = completeBooking()
	b.TermsAccepted = false
	if err := ValidateStep(StepTerms, b); !domain.IsValidation(err) {
		t.Fatalf("unaccepted terms should fail, got %v", err)
	}
}

func TestValidatePaymentNeedsSavedDraft(t *testing.T) {
	b := completeBooking()
	b.ID = 0
	if err := ValidateStep(StepPayment, b); !domain.IsValidation(err) {
		t.Fatalf("unsaved draft should fail the payment step, got %v", err)
	}
}

func TestValidateUnknownStep(t *testing.T) {
	if err := ValidateStep(99, completeBooking()); !domain.IsValidation(err) {
		t.Fatalf("unknown step should fail, got %v", err)
	}
}
