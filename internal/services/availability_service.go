package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"hallbooking/internal/domain"
	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// AvailabilityService answers "is this date free" against confirmed and
// mid-payment bookings. Results are cached cache-aside in redis for a
// short TTL when a client is configured; without redis it goes straight
// to the database.
type AvailabilityService struct {
	BookingRepo repositories.BookingRepository
	Cache       *redis.Client
	TTL         time.Duration
	RequestID   string
}

const availabilityKeyPrefix = "hallbooking:availability:"

// DateAvailable reports whether the hall can still be booked on the date.
func (s AvailabilityService) DateAvailable(ctx context.Context, date string) (bool, error) {
	parsed, err := utils.ParseDate(date)
	if err != nil {
		return false, domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD"}
	}
	today := time.Now().In(time.Local)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)
	if parsed.Before(today) {
		return false, domain.ValidationError{Field: "date", Msg: "date must be in the future"}
	}

	key := availabilityKeyPrefix + date
	if s.Cache != nil {
		if val, err := s.Cache.Get(ctx, key).Result(); err == nil {
			return val == "1", nil
		}
	}

	count, err := s.BookingRepo.CountActiveOnDate(ctx, date)
	if err != nil {
		return false, err
	}
	available := count == 0

	if s.Cache != nil {
		cached := "0"
		if available {
			cached = "1"
		}
		ttl := s.TTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := s.Cache.Set(ctx, key, cached, ttl).Err(); err != nil {
			utils.LogError(s.RequestID, "availability", "cache_set", err)
		}
	}

	return available, nil
}

// InvalidateDate drops the cached answer after a booking changes state on
// that date.
func (s AvailabilityService) InvalidateDate(ctx context.Context, date string) {
	if s.Cache == nil || date == "" {
		return
	}
	if err := s.Cache.Del(ctx, availabilityKeyPrefix+date).Err(); err != nil {
		utils.LogError(s.RequestID, "availability", "cache_del", err)
	}
}
