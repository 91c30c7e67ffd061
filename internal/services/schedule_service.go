package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/events"
	"github.com/skyreserve/airline-backend/internal/models"
)

// ScheduleStore is the schedule persistence surface the service needs.
// MergeActuals merges reported actuals into the stored row and applies
// the resolve function to the merged snapshot while holding the row, so
// the written status can never be computed from stale timestamps.
type ScheduleStore interface {
	Create(schedule *models.Schedule) error
	GetByID(scheduleID int64) (*models.Schedule, error)
	GetByFlightID(flightID int64) ([]models.Schedule, error)
	List() ([]models.Schedule, error)
	MergeActuals(scheduleID int64, currentDeparture, currentArrival *time.Time, resolve func(*models.Schedule) models.ScheduleStatus) (*models.Schedule, error)
	Cancel(scheduleID int64) (*models.Schedule, error)
}

// FlightStore is the flight lookup surface the service needs
type FlightStore interface {
	GetByID(flightID int64) (*models.Flight, error)
	List() ([]models.Flight, error)
}

// EventPublisher publishes reservation events; failures are logged, not fatal
type EventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload interface{}) error
}

// ResolveStatus derives the schedule status from its four timestamps.
// It is total and side-effect free: an observed arrival means Landed, no
// actuals means On-Time, otherwise the departure delta decides between
// Delayed and On-Time. Cancelled is never produced here; it is an
// externally forced terminal state.
func ResolveStatus(scheduledDeparture, scheduledArrival time.Time, currentDeparture, currentArrival *time.Time, delayThreshold time.Duration) models.ScheduleStatus {
	if currentArrival != nil {
		return models.ScheduleStatusLanded
	}
	if currentDeparture == nil {
		return models.ScheduleStatusOnTime
	}

	if currentDeparture.Sub(scheduledDeparture) > delayThreshold {
		return models.ScheduleStatusDelayed
	}
	return models.ScheduleStatusOnTime
}

// ScheduleService manages scheduled departures and their derived status
type ScheduleService struct {
	schedules      ScheduleStore
	flights        FlightStore
	inventory      *InventoryService
	producer       EventPublisher
	scheduleTopic  string
	delayThreshold time.Duration
	logger         logrus.FieldLogger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	schedules ScheduleStore,
	flights FlightStore,
	inventory *InventoryService,
	producer EventPublisher,
	scheduleTopic string,
	delayThreshold time.Duration,
	logger logrus.FieldLogger,
) *ScheduleService {
	return &ScheduleService{
		schedules:      schedules,
		flights:        flights,
		inventory:      inventory,
		producer:       producer,
		scheduleTopic:  scheduleTopic,
		delayThreshold: delayThreshold,
		logger:         logger,
	}
}

// Create creates a scheduled departure for an existing flight and
// materializes its seat inventory. The inventory write is guarded
// against re-generation, so a duplicate create attempt cannot duplicate
// seats.
func (s *ScheduleService) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.Schedule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.flights.GetByID(req.FlightID); err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up flight: %w", err)
	}

	schedule := &models.Schedule{
		FlightID:           req.FlightID,
		ScheduledDeparture: req.ScheduledDeparture,
		ScheduledArrival:   req.ScheduledArrival,
		Status:             models.ScheduleStatusOnTime,
	}

	if err := s.schedules.Create(schedule); err != nil {
		return nil, err
	}

	if _, err := s.inventory.GenerateForSchedule(schedule.ID); err != nil {
		// The schedule row exists but its inventory does not; surface
		// this as a fatal data-integrity error rather than returning a
		// schedule nobody can book.
		return nil, fmt.Errorf("schedule %d created but inventory generation failed: %w", schedule.ID, err)
	}

	return schedule, nil
}

// GetByID returns one schedule
func (s *ScheduleService) GetByID(scheduleID int64) (*models.Schedule, error) {
	return s.schedules.GetByID(scheduleID)
}

// List returns all schedules
func (s *ScheduleService) List() ([]models.Schedule, error) {
	return s.schedules.List()
}

// ListByFlight returns the schedules of one flight
func (s *ScheduleService) ListByFlight(flightID int64) ([]models.Schedule, error) {
	if _, err := s.flights.GetByID(flightID); err != nil {
		return nil, err
	}
	return s.schedules.GetByFlightID(flightID)
}

// UpdateTimes records observed departure/arrival actuals and recomputes
// the derived status. Merge and status write happen as one store
// operation over the locked row, so two concurrent reports converge on
// the status of the fully merged timestamps; a Cancelled schedule is
// terminal and keeps its status no matter what actuals arrive.
func (s *ScheduleService) UpdateTimes(ctx context.Context, scheduleID int64, req *models.UpdateScheduleTimesRequest) (*models.Schedule, error) {
	if req.IsEmpty() {
		return nil, models.NewValidationError("current_departure", "at least one of current_departure or current_arrival is required")
	}

	merged, err := s.schedules.MergeActuals(scheduleID, req.CurrentDeparture, req.CurrentArrival, s.resolve)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, merged)
	return merged, nil
}

// resolve derives the status of a merged schedule row
func (s *ScheduleService) resolve(schedule *models.Schedule) models.ScheduleStatus {
	return ResolveStatus(
		schedule.ScheduledDeparture, schedule.ScheduledArrival,
		schedule.CurrentDeparture, schedule.CurrentArrival,
		s.delayThreshold,
	)
}

// Cancel forces a schedule into the Cancelled state
func (s *ScheduleService) Cancel(ctx context.Context, scheduleID int64) (*models.Schedule, error) {
	schedule, err := s.schedules.Cancel(scheduleID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleService) publish(ctx context.Context, schedule *models.Schedule) {
	if s.producer == nil {
		return
	}
	key := strconv.FormatInt(schedule.ID, 10)
	if err := s.producer.Publish(ctx, s.scheduleTopic, key, events.TypeScheduleUpdated, schedule); err != nil {
		s.logger.WithError(err).WithField("schedule_id", schedule.ID).
			Warn("Failed to publish schedule event")
	}
}
