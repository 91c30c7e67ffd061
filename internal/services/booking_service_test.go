package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skyreserve/airline-backend/internal/events"
	"github.com/skyreserve/airline-backend/internal/models"
)

type bookingFixture struct {
	bookings  *fakeBookingStore
	customers *fakeCustomerStore
	schedules *fakeScheduleStore
	seats     *fakeSeatStore
	locks     *fakeSeatLocker
	producer  *fakePublisher
	svc       *BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		bookings:  newFakeBookingStore(),
		customers: &fakeCustomerStore{customers: map[int64]*models.Customer{1: {ID: 1}}},
		schedules: newFakeScheduleStore(),
		seats:     &fakeSeatStore{},
		locks:     newFakeSeatLocker(),
		producer:  &fakePublisher{},
	}

	f.schedules.add(&models.Schedule{
		ID:                 5,
		FlightID:           1,
		ScheduledDeparture: time.Now().Add(72 * time.Hour),
		ScheduledArrival:   time.Now().Add(75 * time.Hour),
		Status:             models.ScheduleStatusOnTime,
	})

	f.seats.slots = []models.SeatSlot{
		{ID: 1, ScheduleID: 5, RowNumber: 1, ColumnLetter: "A", Class: models.SeatClassFirst, Price: 20000},
		{ID: 2, ScheduleID: 5, RowNumber: 7, ColumnLetter: "B", Class: models.SeatClassEconomy, Price: 5000},
		{ID: 3, ScheduleID: 5, RowNumber: 7, ColumnLetter: "C", Class: models.SeatClassEconomy, Price: 5000, IsBooked: true},
	}

	f.svc = NewBookingService(
		f.bookings, f.customers, f.schedules, f.seats, f.locks, f.producer,
		"booking-events", 30*time.Second, testLogger(),
	)
	return f
}

func validBookingRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		CustomerID:    1,
		ScheduleID:    5,
		PaymentMethod: "card",
		Amount:        25000,
		Passengers: []models.PassengerInput{
			{FirstName: "Amara", LastName: "Perera", Gender: "F", Nationality: "LK", RowNumber: 1, ColumnLetter: "A", Class: models.SeatClassFirst, Price: 20000},
			{FirstName: "Nuwan", LastName: "Silva", Gender: "M", Nationality: "LK", RowNumber: 7, ColumnLetter: "B", Class: models.SeatClassEconomy, Price: 5000},
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newBookingFixture(t)

		resp, err := f.svc.Create(context.Background(), validBookingRequest())
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, resp.Booking.PaymentStatus)
		assert.Len(t, resp.Allocations, 2)

		// Locks are taken per seat and released after the transaction.
		assert.Len(t, f.locks.acquired, 2)
		assert.Len(t, f.locks.released, 2)

		require.Len(t, f.producer.events, 1)
		assert.Equal(t, events.TypeBookingCreated, f.producer.events[0].EventType)
	})

	t.Run("No passengers", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.Passengers = nil

		_, err := f.svc.Create(context.Background(), req)
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Empty(t, f.bookings.bookings)
	})

	t.Run("Duplicate seat in request", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.Passengers[1].RowNumber = 1
		req.Passengers[1].ColumnLetter = "A"

		_, err := f.svc.Create(context.Background(), req)
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.CustomerID = 99

		_, err := f.svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("Cancelled schedule", func(t *testing.T) {
		f := newBookingFixture(t)
		f.schedules.schedules[5].Status = models.ScheduleStatusCancelled

		_, err := f.svc.Create(context.Background(), validBookingRequest())
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "schedule_id", vErr.Field)
	})

	t.Run("Amount mismatch", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.Amount = 10000

		_, err := f.svc.Create(context.Background(), req)
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "amount", vErr.Field)
		assert.Empty(t, f.bookings.bookings)
	})

	t.Run("Seat already booked", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.Amount = 25000
		req.Passengers[1].RowNumber = 7
		req.Passengers[1].ColumnLetter = "C"

		_, err := f.svc.Create(context.Background(), req)
		var conflict *models.SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Seats, "7C")
	})

	t.Run("Nonexistent seat", func(t *testing.T) {
		f := newBookingFixture(t)
		req := validBookingRequest()
		req.Passengers[1].RowNumber = 30

		_, err := f.svc.Create(context.Background(), req)
		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Lock contention fails fast", func(t *testing.T) {
		f := newBookingFixture(t)
		f.locks.denied[lockKey(5, 7, "B")] = true

		_, err := f.svc.Create(context.Background(), validBookingRequest())
		var conflict *models.SeatConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Contains(t, conflict.Seats, "7B")

		// The lock taken before the contended one is released again.
		assert.Equal(t, []string{lockKey(5, 1, "A")}, f.released())
		assert.Empty(t, f.bookings.bookings)
	})

	t.Run("Store conflict propagates", func(t *testing.T) {
		f := newBookingFixture(t)
		f.bookings.createErr = &models.SeatConflictError{Seats: []string{"1A"}}

		_, err := f.svc.Create(context.Background(), validBookingRequest())
		var conflict *models.SeatConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Empty(t, f.producer.events)
	})
}

func (f *bookingFixture) released() []string {
	return f.locks.released
}

func TestBookingService_Cancel(t *testing.T) {
	seed := func(f *bookingFixture, hoursToDeparture time.Duration) int64 {
		f.schedules.schedules[5].ScheduledDeparture = time.Now().Add(hoursToDeparture)
		booking := &models.Booking{
			CustomerID:    1,
			ScheduleID:    5,
			Amount:        1000,
			PaymentStatus: models.PaymentStatusPaid,
		}
		resp, err := f.bookings.CreateWithAllocations(booking, nil)
		if err != nil {
			panic(err)
		}
		return resp.Booking.ID
	}

	t.Run("Early cancellation refunds 90 percent", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, 72*time.Hour)

		summary, err := f.svc.Cancel(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, float64(900), summary.RefundAmount)
		assert.Equal(t, float64(90), summary.RefundPercentage)
		assert.Equal(t, models.PaymentStatusRefunded, summary.PaymentStatus)
		assert.Equal(t, 72, summary.HoursToDeparture)

		require.Len(t, f.producer.events, 1)
		assert.Equal(t, events.TypeBookingCancelled, f.producer.events[0].EventType)
	})

	t.Run("Mid tier refunds 50 percent", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, 30*time.Hour)

		summary, err := f.svc.Cancel(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, float64(500), summary.RefundAmount)
	})

	t.Run("Late cancellation refunds the floor", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, 2*time.Hour)

		summary, err := f.svc.Cancel(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, float64(200), summary.RefundAmount)
	})

	t.Run("After departure still refunds the floor", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, -5*time.Hour)

		summary, err := f.svc.Cancel(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, float64(200), summary.RefundAmount)
		assert.Equal(t, -5, summary.HoursToDeparture)
	})

	t.Run("Repeat cancellation is rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, 72*time.Hour)

		_, err := f.svc.Cancel(context.Background(), id)
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), id)
		assert.ErrorIs(t, err, models.ErrAlreadyRefunded)
		assert.Len(t, f.producer.events, 1)
	})

	t.Run("Unpaid booking is not refundable", func(t *testing.T) {
		f := newBookingFixture(t)
		id := seed(f, 72*time.Hour)
		f.bookings.bookings[id].PaymentStatus = models.PaymentStatusPending

		_, err := f.svc.Cancel(context.Background(), id)
		var vErr *models.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "payment_status", vErr.Field)
		assert.NotErrorIs(t, err, models.ErrAlreadyRefunded)
		assert.Empty(t, f.producer.events)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.svc.Cancel(context.Background(), 404)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestBookingService_GetByID(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.Create(context.Background(), validBookingRequest())
	require.NoError(t, err)

	got, err := f.svc.GetByID(resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Booking.ID, got.Booking.ID)
	assert.Len(t, got.Allocations, 2)

	_, err = f.svc.GetByID(404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
