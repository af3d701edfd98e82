package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"hallbooking/internal/repositories"
)

func TestRemoveStaleDrafts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM hall_bookings").
		WithArgs("draft", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	svc := CleanupService{
		BookingRepo: repositories.BookingRepository{DB: db},
		MaxAge:      7 * 24 * time.Hour,
	}
	removed, err := svc.RemoveStaleDrafts(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
