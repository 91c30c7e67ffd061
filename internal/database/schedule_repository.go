package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skyreserve/airline-backend/internal/models"
)

// ScheduleRepository handles database operations for the schedules table
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create creates a new scheduled departure
func (r *ScheduleRepository) Create(schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (flight_id, scheduled_departure, scheduled_arrival, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusOnTime
	}

	err := r.db.QueryRow(
		query,
		schedule.FlightID, schedule.ScheduledDeparture, schedule.ScheduledArrival, schedule.Status,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	return nil
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(scheduleID int64) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	query := `
		SELECT id, flight_id, scheduled_departure, scheduled_arrival,
		       current_departure, current_arrival, status, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	err := r.db.Get(schedule, query, scheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return schedule, nil
}

// GetByFlightID retrieves all schedules for a flight
func (r *ScheduleRepository) GetByFlightID(flightID int64) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	query := `
		SELECT id, flight_id, scheduled_departure, scheduled_arrival,
		       current_departure, current_arrival, status, created_at, updated_at
		FROM schedules
		WHERE flight_id = $1
		ORDER BY scheduled_departure
	`

	if err := r.db.Select(&schedules, query, flightID); err != nil {
		return nil, fmt.Errorf("failed to list schedules for flight: %w", err)
	}

	return schedules, nil
}

// List retrieves all schedules
func (r *ScheduleRepository) List() ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	query := `
		SELECT id, flight_id, scheduled_departure, scheduled_arrival,
		       current_departure, current_arrival, status, created_at, updated_at
		FROM schedules
		ORDER BY scheduled_departure
	`

	if err := r.db.Select(&schedules, query); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	return schedules, nil
}

// MergeActuals merges the reported actual departure/arrival into the
// stored row, derives the status from the merged snapshot and writes
// both in one transaction. The row is locked for the duration, so two
// concurrent reports serialize and the later one derives from a row
// that already carries the earlier one's actuals; the status can never
// reflect a stale snapshot. Nil values keep the stored actuals. A
// Cancelled schedule is terminal: its actuals still merge but resolve
// is not applied.
func (r *ScheduleRepository) MergeActuals(scheduleID int64, currentDeparture, currentArrival *time.Time, resolve func(*models.Schedule) models.ScheduleStatus) (*models.Schedule, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	schedule := &models.Schedule{}
	selectQuery := `
		SELECT id, flight_id, scheduled_departure, scheduled_arrival,
		       current_departure, current_arrival, status, created_at, updated_at
		FROM schedules
		WHERE id = $1
		FOR UPDATE
	`

	if err := tx.Get(schedule, selectQuery, scheduleID); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock schedule: %w", err)
	}

	if currentDeparture != nil {
		schedule.CurrentDeparture = currentDeparture
	}
	if currentArrival != nil {
		schedule.CurrentArrival = currentArrival
	}
	if schedule.Status != models.ScheduleStatusCancelled && resolve != nil {
		schedule.Status = resolve(schedule)
	}

	updateQuery := `
		UPDATE schedules SET
			current_departure = $2, current_arrival = $3, status = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err = tx.QueryRowx(updateQuery,
		schedule.ID, schedule.CurrentDeparture, schedule.CurrentArrival, schedule.Status,
	).Scan(&schedule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to merge schedule actuals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return schedule, nil
}

// Cancel forces a schedule into the terminal Cancelled state
func (r *ScheduleRepository) Cancel(scheduleID int64) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	query := `
		UPDATE schedules SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, flight_id, scheduled_departure, scheduled_arrival,
		          current_departure, current_arrival, status, created_at, updated_at
	`

	err := r.db.QueryRow(query, scheduleID, models.ScheduleStatusCancelled).Scan(
		&schedule.ID, &schedule.FlightID, &schedule.ScheduledDeparture, &schedule.ScheduledArrival,
		&schedule.CurrentDeparture, &schedule.CurrentArrival, &schedule.Status,
		&schedule.CreatedAt, &schedule.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel schedule: %w", err)
	}

	return schedule, nil
}
