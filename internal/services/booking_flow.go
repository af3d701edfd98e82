package services

import (
	"context"
	"strconv"
	"strings"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// BookingFlow owns the multi-step form state: the in-memory draft, the
// current step and the saving flag. Every successful Advance and every
// Save writes the draft through to the store; validation failures and
// persistence failures both leave the in-memory state untouched so the
// caller can retry.
type BookingFlow struct {
	BookingRepo repositories.BookingRepository
	UserRepo    repositories.UserRepository
	RequestID   string

	Draft  models.HallBooking
	Step   int
	Saving bool
}

// LoadOrCreateDraft resumes the most recent draft for the user, or starts
// a fresh one with defaults prefilled from the profile. A missing draft is
// not an error.
func (f *BookingFlow) LoadOrCreateDraft(ctx context.Context, userID int64) error {
	f.Step = FirstStep

	draft, found, err := f.BookingRepo.FindDraftByUser(ctx, userID)
	if err != nil {
		return err
	}
	if found {
		utils.LogEvent(f.RequestID, "booking", "draft_loaded", "booking_id="+strconv.FormatInt(draft.ID, 10))
		f.Draft = draft
		return nil
	}

	f.Draft = models.NewDraft(userID)
	if user, err := f.UserRepo.GetByID(ctx, userID); err == nil {
		f.Draft.ApplicantEmail = user.Email
		f.Draft.ApplicantPhone = user.Phone
		name := strings.Fields(user.FullName)
		if len(name) > 0 {
			f.Draft.ApplicantName = name[0]
			f.Draft.ApplicantSurname = strings.Join(name[1:], " ")
		}
	}
	utils.LogEvent(f.RequestID, "booking", "draft_created", "user_id="+strconv.FormatInt(userID, 10))
	return nil
}

// AdoptDraft takes a client-submitted draft and makes it safe to persist
// for the given user. Workflow-owned fields can never be set by the
// client: the status is pinned to draft, the amounts to the fixed fee
// schedule, and the user id to the caller. A non-zero id must point at a
// draft row owned by the caller; payment fields are carried over from the
// stored row, not from the request.
func (f *BookingFlow) AdoptDraft(ctx context.Context, incoming models.HallBooking, userID int64) error {
	incoming.UserID = userID
	incoming.Status = models.StatusDraft
	incoming.TotalAmount = models.TotalAmount
	incoming.RentalFee = models.RentalFee
	incoming.DepositAmount = models.DepositAmount
	incoming.TermsVersion = models.TermsVersion

	if incoming.ID > 0 {
		stored, err := f.BookingRepo.GetByID(ctx, incoming.ID)
		if err != nil {
			return err
		}
		if stored.UserID != userID {
			// Do not reveal other users' bookings.
			return domain.NotFoundError{Resource: "booking"}
		}
		if stored.Status != models.StatusDraft {
			return domain.ConflictError{Resource: "booking", Msg: "only draft bookings can be edited"}
		}
		incoming.BookingReference = stored.BookingReference
		incoming.PaymentStatus = stored.PaymentStatus
		incoming.PaymentReference = stored.PaymentReference
		incoming.CheckoutID = stored.CheckoutID
	} else {
		incoming.BookingReference = ""
		incoming.PaymentStatus = models.PaymentPending
		incoming.PaymentReference = ""
		incoming.CheckoutID = ""
	}

	f.Draft = incoming
	return nil
}

// Advance validates the active step, persists the draft write-through and
// moves forward one step, clamped to the last. The step index does not
// change when validation or persistence fails.
func (f *BookingFlow) Advance(ctx context.Context) error {
	if f.Step < FirstStep {
		f.Step = FirstStep
	}

	if err := ValidateStep(f.Step, f.Draft); err != nil {
		return err
	}

	// Passing the terms step stamps the acceptance time.
	if f.Step == StepTerms && f.Draft.TermsAcceptedAt == "" {
		f.Draft.TermsAcceptedAt = utils.Timestamp(utils.NowUTC())
	}

	if err := f.Save(ctx); err != nil {
		return err
	}

	if f.Step < LastStep {
		f.Step++
	}
	return nil
}

// Retreat steps back without persisting, clamped to the first step.
func (f *BookingFlow) Retreat() {
	if f.Step > FirstStep {
		f.Step--
	}
}

// SetStep restores a step position, clamped to the valid range. The HTTP
// layer uses this to rebuild the flow from the client's reported step.
func (f *BookingFlow) SetStep(step int) {
	switch {
	case step < FirstStep:
		f.Step = FirstStep
	case step > LastStep:
		f.Step = LastStep
	default:
		f.Step = step
	}
}

// Save upserts the draft keyed by its id: insert when absent, update when
// present. Idempotent; safe to call on every step transition.
func (f *BookingFlow) Save(ctx context.Context) error {
	f.Saving = true
	defer func() { f.Saving = false }()

	if err := f.BookingRepo.Upsert(ctx, &f.Draft); err != nil {
		utils.LogError(f.RequestID, "booking", "save_draft", err)
		return err
	}
	utils.LogEvent(f.RequestID, "booking", "draft_saved", "booking_id="+strconv.FormatInt(f.Draft.ID, 10))
	return nil
}
