package models

import "time"

// ScheduleStatus represents the derived status of a scheduled departure
type ScheduleStatus string

const (
	ScheduleStatusOnTime    ScheduleStatus = "On-Time"
	ScheduleStatusDelayed   ScheduleStatus = "Delayed"
	ScheduleStatusCancelled ScheduleStatus = "Cancelled"
	ScheduleStatusLanded    ScheduleStatus = "Landed"
)

// Schedule represents one scheduled departure of a flight.
// Status is always derived from the four timestamps, except Cancelled,
// which is set externally and is terminal.
type Schedule struct {
	ID                 int64          `json:"id" db:"id"`
	FlightID           int64          `json:"flight_id" db:"flight_id"`
	ScheduledDeparture time.Time      `json:"scheduled_departure" db:"scheduled_departure"`
	ScheduledArrival   time.Time      `json:"scheduled_arrival" db:"scheduled_arrival"`
	CurrentDeparture   *time.Time     `json:"current_departure,omitempty" db:"current_departure"`
	CurrentArrival     *time.Time     `json:"current_arrival,omitempty" db:"current_arrival"`
	Status             ScheduleStatus `json:"status" db:"status"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateScheduleRequest represents the request to create a scheduled departure
type CreateScheduleRequest struct {
	FlightID           int64     `json:"flight_id" binding:"required"`
	ScheduledDeparture time.Time `json:"scheduled_departure" binding:"required"`
	ScheduledArrival   time.Time `json:"scheduled_arrival" binding:"required"`
}

// Validate validates the schedule creation request
func (r *CreateScheduleRequest) Validate() error {
	if !r.ScheduledArrival.After(r.ScheduledDeparture) {
		return NewValidationError("scheduled_arrival", "must be after scheduled_departure")
	}
	return nil
}

// UpdateScheduleTimesRequest reports observed departure/arrival actuals.
// Nil fields leave the stored actuals unchanged.
type UpdateScheduleTimesRequest struct {
	CurrentDeparture *time.Time `json:"current_departure,omitempty"`
	CurrentArrival   *time.Time `json:"current_arrival,omitempty"`
}

// IsEmpty reports whether the update carries no actuals
func (r *UpdateScheduleTimesRequest) IsEmpty() bool {
	return r.CurrentDeparture == nil && r.CurrentArrival == nil
}
