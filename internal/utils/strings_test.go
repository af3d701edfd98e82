package utils

import "testing"

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.co", "thandi.nkosi@example.com", "x+y@sub.domain.org"}
	for _, e := range valid {
		if !IsEmail(e) {
			t.Fatalf("%q should be valid", e)
		}
	}
	invalid := []string{"", "plain", "a @b.co", "a@b", "@b.co", "a@.co "}
	for _, e := range invalid {
		if IsEmail(e) {
			t.Fatalf("%q should be invalid", e)
		}
	}
}

func TestIsBranchCode(t *testing.T) {
	if !IsBranchCode("250655") {
		t.Fatalf("six digits should be valid")
	}
	if !IsBranchCode("250 655") {
		t.Fatalf("spaces should be ignored")
	}
	for _, c := range []string{"", "12345", "1234567", "25065a"} {
		if IsBranchCode(c) {
			t.Fatalf("%q should be invalid", c)
		}
	}
}
