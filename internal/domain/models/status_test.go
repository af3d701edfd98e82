package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusDraft, StatusPaymentProcessing, true},
		{StatusPaymentProcessing, StatusConfirmed, true},
		{StatusPaymentProcessing, StatusDraft, true},
		{StatusConfirmed, StatusRejected, true},
		{StatusDraft, StatusConfirmed, false},
		{StatusConfirmed, StatusDraft, false},
		{StatusRejected, StatusDraft, false},
		{StatusConfirmed, StatusPaymentProcessing, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.allowed {
			t.Fatalf("transition %s -> %s: got %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestStatusPayable(t *testing.T) {
	if !StatusDraft.Payable() {
		t.Fatalf("draft should be payable")
	}
	for _, s := range []BookingStatus{StatusPaymentProcessing, StatusConfirmed, StatusRejected} {
		if s.Payable() {
			t.Fatalf("%s should not be payable", s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusDraft, StatusPaymentProcessing, StatusConfirmed, StatusRejected} {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if BookingStatus("pending").IsValid() {
		t.Fatalf("unknown status should not be valid")
	}
}
