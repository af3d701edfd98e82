package utils

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsBranchCode reports whether s is a valid 6-digit bank branch code.
// Embedded spaces are ignored.
func IsBranchCode(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	return len(s) == 6 && digitsOnly.MatchString(s)
}
