package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/events"
	"github.com/skyreserve/airline-backend/internal/models"
)

// BookingStore is the booking persistence surface the service needs
type BookingStore interface {
	CreateWithAllocations(booking *models.Booking, passengers []models.PassengerInput) (*models.BookingResponse, error)
	GetByID(bookingID int64) (*models.Booking, error)
	GetByCustomerID(customerID int64) ([]models.Booking, error)
	GetAllocations(bookingID int64) ([]models.Allocation, error)
	TransitionPaymentStatus(bookingID int64, from, to models.PaymentStatus) (bool, error)
}

// CustomerStore is the customer lookup surface the service needs
type CustomerStore interface {
	GetByID(customerID int64) (*models.Customer, error)
}

// SeatLocker provides short-lived exclusive locks on seat positions
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, scheduleID int64, row int, column string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, scheduleID int64, row int, column string) error
}

// BookingService owns booking creation and cancellation
type BookingService struct {
	bookings     BookingStore
	customers    CustomerStore
	schedules    ScheduleStore
	seats        SeatStore
	locks        SeatLocker
	producer     EventPublisher
	bookingTopic string
	lockTTL      time.Duration
	logger       logrus.FieldLogger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookings BookingStore,
	customers CustomerStore,
	schedules ScheduleStore,
	seats SeatStore,
	locks SeatLocker,
	producer EventPublisher,
	bookingTopic string,
	lockTTL time.Duration,
	logger logrus.FieldLogger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		customers:    customers,
		schedules:    schedules,
		seats:        seats,
		locks:        locks,
		producer:     producer,
		bookingTopic: bookingTopic,
		lockTTL:      lockTTL,
		logger:       logger,
	}
}

// Create creates a booking and its passenger-seat allocations as one
// atomic unit. The booking amount is recomputed server-side from the
// targeted seat prices and compared against the caller-supplied amount;
// a mismatch is a validation failure, never silently corrected.
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(req.CustomerID); err != nil {
		return nil, err
	}
	schedule, err := s.schedules.GetByID(req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status == models.ScheduleStatusCancelled {
		return nil, models.NewValidationError("schedule_id", "schedule has been cancelled")
	}

	if err := s.verifyAmount(req); err != nil {
		return nil, err
	}

	locked, err := s.acquireLocks(ctx, req)
	if err != nil {
		return nil, err
	}
	defer s.releaseLocks(ctx, req.ScheduleID, locked)

	booking := &models.Booking{
		CustomerID:    req.CustomerID,
		ScheduleID:    req.ScheduleID,
		Amount:        req.Amount,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: req.PaymentMethod,
	}

	resp, err := s.bookings.CreateWithAllocations(booking, req.Passengers)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeBookingCreated, resp.Booking)
	return resp, nil
}

// Cancel refunds a booking based on how far in advance of departure it
// is cancelled. A booking can be refunded exactly once: repeating the
// cancellation fails with ErrAlreadyRefunded. Seats are not released;
// cancellation is refund-only.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (*models.RefundSummary, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == models.PaymentStatusRefunded {
		return nil, models.ErrAlreadyRefunded
	}
	if booking.PaymentStatus != models.PaymentStatusPaid {
		return nil, models.NewValidationError("payment_status", "only paid bookings can be refunded")
	}

	schedule, err := s.schedules.GetByID(booking.ScheduleID)
	if err != nil {
		return nil, err
	}

	hours := time.Until(schedule.ScheduledDeparture).Hours()
	percentage := RefundPercentage(hours)
	refund := RefundAmount(booking.Amount, percentage)

	moved, err := s.bookings.TransitionPaymentStatus(bookingID, models.PaymentStatusPaid, models.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost a race with another cancellation of the same booking.
		return nil, models.ErrAlreadyRefunded
	}

	booking.PaymentStatus = models.PaymentStatusRefunded
	s.publish(ctx, events.TypeBookingCancelled, booking)

	return &models.RefundSummary{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		RefundAmount:     refund,
		RefundPercentage: percentage * 100,
		HoursToDeparture: int(math.Round(hours)),
		PaymentStatus:    models.PaymentStatusRefunded,
	}, nil
}

// GetByID returns a booking with its allocations
func (s *BookingService) GetByID(bookingID int64) (*models.BookingResponse, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	allocations, err := s.bookings.GetAllocations(bookingID)
	if err != nil {
		return nil, err
	}
	return &models.BookingResponse{Booking: booking, Allocations: allocations}, nil
}

// ListByCustomer returns all bookings of a customer
func (s *BookingService) ListByCustomer(customerID int64) ([]models.Booking, error) {
	return s.bookings.GetByCustomerID(customerID)
}

// verifyAmount recomputes the booking amount from the targeted seats
// and checks both the seat prices claimed by the caller and the total
func (s *BookingService) verifyAmount(req *models.CreateBookingRequest) error {
	var total float64
	for _, p := range req.Passengers {
		seat, err := s.seats.GetByPosition(req.ScheduleID, p.RowNumber, p.ColumnLetter)
		if err != nil {
			if err == models.ErrNotFound {
				return models.NewValidationError("passengers", fmt.Sprintf("seat %s does not exist on this schedule", p.SeatLabel()))
			}
			return err
		}
		if seat.IsBooked {
			return &models.SeatConflictError{Seats: []string{p.SeatLabel()}}
		}
		total += seat.Price
	}

	if math.Abs(total-req.Amount) > 0.005 {
		return models.NewValidationError("amount", fmt.Sprintf("amount %.2f does not match seat prices totalling %.2f", req.Amount, total))
	}
	return nil
}

// acquireLocks takes a short Redis lock per targeted seat so two
// concurrent bookings of the same seat fail fast instead of both
// reaching the database. The conditional seat update inside the booking
// transaction remains the authoritative guard.
func (s *BookingService) acquireLocks(ctx context.Context, req *models.CreateBookingRequest) ([]models.PassengerInput, error) {
	if s.locks == nil {
		return nil, nil
	}

	locked := make([]models.PassengerInput, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		ok, err := s.locks.AcquireSeatLock(ctx, req.ScheduleID, p.RowNumber, p.ColumnLetter, s.lockTTL)
		if err != nil {
			s.releaseLocks(ctx, req.ScheduleID, locked)
			return nil, fmt.Errorf("failed to acquire seat lock: %w", err)
		}
		if !ok {
			s.releaseLocks(ctx, req.ScheduleID, locked)
			return nil, &models.SeatConflictError{Seats: []string{p.SeatLabel()}}
		}
		locked = append(locked, p)
	}
	return locked, nil
}

func (s *BookingService) releaseLocks(ctx context.Context, scheduleID int64, locked []models.PassengerInput) {
	for _, p := range locked {
		if err := s.locks.ReleaseSeatLock(ctx, scheduleID, p.RowNumber, p.ColumnLetter); err != nil {
			s.logger.WithError(err).WithField("seat", p.SeatLabel()).
				Warn("Failed to release seat lock")
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *models.Booking) {
	if s.producer == nil {
		return
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, eventType, booking); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID).
			Warn("Failed to publish booking event")
	}
}
