package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyreserve/airline-backend/internal/models"
)

func bookingFixture() (*models.Booking, []models.PassengerInput) {
	booking := &models.Booking{
		CustomerID:    1,
		ScheduleID:    5,
		Amount:        25000,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: "card",
	}
	passengers := []models.PassengerInput{
		{FirstName: "Amara", LastName: "Perera", Gender: "F", Nationality: "LK", RowNumber: 1, ColumnLetter: "A", Class: models.SeatClassFirst, Price: 20000},
		{FirstName: "Nuwan", LastName: "Silva", Gender: "M", Nationality: "LK", RowNumber: 7, ColumnLetter: "B", Class: models.SeatClassEconomy, Price: 5000},
	}
	return booking, passengers
}

func TestCreateBookingWithAllocations(t *testing.T) {
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking, passengers := bookingFixture()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), booking.CustomerID, booking.ScheduleID,
				booking.Amount, booking.PaymentStatus, booking.PaymentMethod).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_date", "created_at", "updated_at"}).
				AddRow(int64(10), now, now, now))

		for i, p := range passengers {
			mock.ExpectQuery(`UPDATE seat_slots`).
				WithArgs(int64(10), booking.ScheduleID, p.RowNumber, p.ColumnLetter).
				WillReturnRows(sqlmock.NewRows([]string{"id", "class", "price"}).
					AddRow(int64(100+i), p.Class, p.Price))

			mock.ExpectQuery(`INSERT INTO booking_allocations`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(int64(200+i), now, now))
		}
		mock.ExpectCommit()

		resp, err := repo.CreateWithAllocations(booking, passengers)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.Booking.ID)
		assert.NotEmpty(t, resp.Booking.BookingReference)
		require.Len(t, resp.Allocations, 2)
		assert.Equal(t, int64(100), resp.Allocations[0].SeatSlotID)
		assert.Equal(t, models.SeatClassFirst, resp.Allocations[0].Class)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat already claimed rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking, passengers := bookingFixture()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "booking_date", "created_at", "updated_at"}).
				AddRow(int64(10), now, now, now))

		mock.ExpectQuery(`UPDATE seat_slots`).
			WithArgs(int64(10), booking.ScheduleID, 1, "A").
			WillReturnRows(sqlmock.NewRows([]string{"id", "class", "price"}).
				AddRow(int64(100), models.SeatClassFirst, 20000.0))
		mock.ExpectQuery(`INSERT INTO booking_allocations`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(200), now, now))

		// Second seat was taken between validation and the claim.
		mock.ExpectQuery(`UPDATE seat_slots`).
			WithArgs(int64(10), booking.ScheduleID, 7, "B").
			WillReturnRows(sqlmock.NewRows([]string{"id", "class", "price"}))
		mock.ExpectRollback()

		resp, err := repo.CreateWithAllocations(booking, passengers)
		assert.Nil(t, resp)

		var conflict *models.SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, []string{"7B"}, conflict.Seats)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking insert failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookingRepository(db)
		booking, passengers := bookingFixture()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		_, err := repo.CreateWithAllocations(booking, passengers)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "booking_reference", "customer_id", "schedule_id", "amount",
				"payment_status", "payment_method", "booking_date", "created_at", "updated_at",
			}).AddRow(int64(10), "ref-10", int64(1), int64(5), 25000.0, "Paid", "card", now, now, now))

		booking, err := repo.GetByID(10)
		require.NoError(t, err)
		assert.Equal(t, "ref-10", booking.BookingReference)
		assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(404)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionPaymentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Moves when state matches", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET payment_status`).
			WithArgs(int64(10), models.PaymentStatusPaid, models.PaymentStatusRefunded).
			WillReturnResult(sqlmock.NewResult(0, 1))

		moved, err := repo.TransitionPaymentStatus(10, models.PaymentStatusPaid, models.PaymentStatusRefunded)
		require.NoError(t, err)
		assert.True(t, moved)
	})

	t.Run("No-op when already refunded", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET payment_status`).
			WithArgs(int64(10), models.PaymentStatusPaid, models.PaymentStatusRefunded).
			WillReturnResult(sqlmock.NewResult(0, 0))

		moved, err := repo.TransitionPaymentStatus(10, models.PaymentStatusPaid, models.PaymentStatusRefunded)
		require.NoError(t, err)
		assert.False(t, moved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseSeats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec(`UPDATE seat_slots`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	released, err := repo.ReleaseSeats(10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), released)

	assert.NoError(t, mock.ExpectationsWereMet())
}
