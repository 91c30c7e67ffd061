package database

import (
	"database/sql"
	"fmt"

	"github.com/skyreserve/airline-backend/internal/models"
)

// FlightRepository handles database operations for the flights table
type FlightRepository struct {
	db DB
}

// NewFlightRepository creates a new FlightRepository
func NewFlightRepository(db DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Create creates a new flight
func (r *FlightRepository) Create(flight *models.Flight) error {
	query := `
		INSERT INTO flights (flight_no, airline_name, source, destination)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		flight.FlightNo, flight.AirlineName, flight.Source, flight.Destination,
	).Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	return nil
}

// GetByID retrieves a flight by ID
func (r *FlightRepository) GetByID(flightID int64) (*models.Flight, error) {
	flight := &models.Flight{}
	query := `
		SELECT id, flight_no, airline_name, source, destination, created_at, updated_at
		FROM flights
		WHERE id = $1
	`

	err := r.db.Get(flight, query, flightID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return flight, nil
}

// GetByFlightNo retrieves a flight by flight number
func (r *FlightRepository) GetByFlightNo(flightNo string) (*models.Flight, error) {
	flight := &models.Flight{}
	query := `
		SELECT id, flight_no, airline_name, source, destination, created_at, updated_at
		FROM flights
		WHERE flight_no = $1
	`

	err := r.db.Get(flight, query, flightNo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	return flight, nil
}

// List retrieves all flights
func (r *FlightRepository) List() ([]models.Flight, error) {
	flights := []models.Flight{}
	query := `
		SELECT id, flight_no, airline_name, source, destination, created_at, updated_at
		FROM flights
		ORDER BY flight_no
	`

	if err := r.db.Select(&flights, query); err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	return flights, nil
}
