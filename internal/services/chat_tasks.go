package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/models"
)

// TaskInput carries the request context every chat task runs against
type TaskInput struct {
	Message    string
	CustomerID int64
}

// Task is one backend operation a chat intent can trigger. Each task
// declares its name and produces a single result value; errors abort
// the whole dispatch.
type Task interface {
	Name() string
	Run(ctx context.Context, in TaskInput) (any, error)
}

// FlightCache is the flights list cache used by the listFlights task
type FlightCache interface {
	GetFlights(ctx context.Context) ([]models.Flight, error)
	SetFlights(ctx context.Context, flights []models.Flight) error
}

// listFlightsTask returns all flights, cache-aside through Redis
type listFlightsTask struct {
	flights FlightStore
	cache   FlightCache
	logger  logrus.FieldLogger
}

func (t *listFlightsTask) Name() string { return "getFlights" }

func (t *listFlightsTask) Run(ctx context.Context, _ TaskInput) (any, error) {
	if t.cache != nil {
		cached, err := t.cache.GetFlights(ctx)
		if err != nil {
			t.logger.WithError(err).Warn("Flight cache read failed, falling back to database")
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := t.flights.List()
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		if err := t.cache.SetFlights(ctx, flights); err != nil {
			t.logger.WithError(err).Warn("Flight cache write failed")
		}
	}
	return flights, nil
}

// listSchedulesTask returns all schedules with their current status
type listSchedulesTask struct {
	schedules ScheduleStore
}

func (t *listSchedulesTask) Name() string { return "getSchedules" }

func (t *listSchedulesTask) Run(_ context.Context, _ TaskInput) (any, error) {
	return t.schedules.List()
}

// customerBookingsTask returns the bookings of the asking customer
type customerBookingsTask struct {
	bookings BookingStore
}

func (t *customerBookingsTask) Name() string { return "getBookingsByCustomer" }

func (t *customerBookingsTask) Run(_ context.Context, in TaskInput) (any, error) {
	if in.CustomerID <= 0 {
		return map[string]string{"message": "Please provide your customer ID to look up bookings."}, nil
	}

	bookings, err := t.bookings.GetByCustomerID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return map[string]string{"message": fmt.Sprintf("No bookings found for customer ID %d.", in.CustomerID)}, nil
	}
	return bookings, nil
}

// bookingFormTask prompts the client to collect booking details
type bookingFormTask struct{}

func (t *bookingFormTask) Name() string { return "promptBookingForm" }

func (t *bookingFormTask) Run(_ context.Context, _ TaskInput) (any, error) {
	return map[string]any{
		"message": "Please provide the booking details.",
		"fields": []string{
			"customer_id", "schedule_id", "payment_method", "amount", "passengers",
		},
	}, nil
}

// cancellationPolicyTask states the refund tiers
type cancellationPolicyTask struct{}

func (t *cancellationPolicyTask) Name() string { return "getCancellationPolicy" }

func (t *cancellationPolicyTask) Run(_ context.Context, _ TaskInput) (any, error) {
	return map[string]string{
		"message": "Cancellations 48 or more hours before departure are refunded 90%. " +
			"Between 24 and 48 hours the refund is 50%. " +
			"Under 24 hours, including after departure, 20% is refunded.",
	}, nil
}
