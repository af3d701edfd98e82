package services

import (
	"context"
	"strconv"
	"time"

	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// CleanupService removes abandoned drafts. Customers who walk away leave
// draft rows behind; anything untouched for MaxAge is fair game.
type CleanupService struct {
	BookingRepo repositories.BookingRepository
	MaxAge      time.Duration
	RequestID   string
}

// RemoveStaleDrafts deletes drafts older than MaxAge and returns how many
// rows went.
func (s CleanupService) RemoveStaleDrafts(ctx context.Context) (int64, error) {
	maxAge := s.MaxAge
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge)

	removed, err := s.BookingRepo.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "cleanup", "stale_drafts_removed", "count="+strconv.FormatInt(removed, 10))
	return removed, nil
}
