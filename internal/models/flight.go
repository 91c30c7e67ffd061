package models

import "time"

// Flight represents immutable airline reference data
type Flight struct {
	ID          int64     `json:"id" db:"id"`
	FlightNo    string    `json:"flight_no" db:"flight_no"`
	AirlineName string    `json:"airline_name" db:"airline_name"`
	Source      string    `json:"source" db:"source"`
	Destination string    `json:"destination" db:"destination"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateFlightRequest represents the request to register a flight
type CreateFlightRequest struct {
	FlightNo    string `json:"flight_no" binding:"required"`
	AirlineName string `json:"airline_name" binding:"required"`
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}
