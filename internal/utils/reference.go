package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewBookingReference generates a human-quotable reference in the form
// HB-<millis>-<5 uppercase alphanumerics>.
func NewBookingReference() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(refAlphabet[rand.Intn(len(refAlphabet))])
	}
	return fmt.Sprintf("HB-%d-%s", time.Now().UnixMilli(), b.String())
}
