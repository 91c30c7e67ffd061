package database

import (
	"database/sql"
	"fmt"

	"github.com/skyreserve/airline-backend/internal/models"
)

// SeatRepository handles database operations for the seat_slots table
type SeatRepository struct {
	db DB
}

// NewSeatRepository creates a new SeatRepository
func NewSeatRepository(db DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// CountBySchedule returns the number of seat slots materialized for a schedule
func (r *SeatRepository) CountBySchedule(scheduleID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM seat_slots WHERE schedule_id = $1`

	if err := r.db.Get(&count, query, scheduleID); err != nil {
		return 0, fmt.Errorf("failed to count seat slots: %w", err)
	}

	return count, nil
}

// InsertBatch inserts the full generated inventory for a schedule in a
// single transaction. Partial inventory never becomes visible.
func (r *SeatRepository) InsertBatch(slots []models.SeatSlot) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO seat_slots (schedule_id, row_number, column_letter, class, price, is_booked)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	for i := range slots {
		err := tx.QueryRowx(
			query,
			slots[i].ScheduleID, slots[i].RowNumber, slots[i].ColumnLetter,
			slots[i].Class, slots[i].Price, slots[i].IsBooked,
		).Scan(&slots[i].ID, &slots[i].CreatedAt, &slots[i].UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert seat %d%s: %w", slots[i].RowNumber, slots[i].ColumnLetter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListBySchedule retrieves the seat slots for a schedule, optionally
// only the unallocated ones
func (r *SeatRepository) ListBySchedule(scheduleID int64, onlyAvailable bool) ([]models.SeatSlot, error) {
	seats := []models.SeatSlot{}
	query := `
		SELECT id, schedule_id, row_number, column_letter, class, price,
		       is_booked, booking_id, created_at, updated_at
		FROM seat_slots
		WHERE schedule_id = $1
	`
	if onlyAvailable {
		query += ` AND is_booked = FALSE`
	}
	query += ` ORDER BY row_number, column_letter`

	if err := r.db.Select(&seats, query, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to list seat slots: %w", err)
	}

	return seats, nil
}

// GetByPosition retrieves one seat slot by its (schedule, row, column) key
func (r *SeatRepository) GetByPosition(scheduleID int64, row int, column string) (*models.SeatSlot, error) {
	seat := &models.SeatSlot{}
	query := `
		SELECT id, schedule_id, row_number, column_letter, class, price,
		       is_booked, booking_id, created_at, updated_at
		FROM seat_slots
		WHERE schedule_id = $1 AND row_number = $2 AND column_letter = $3
	`

	if err := r.db.Get(seat, query, scheduleID, row, column); err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat slot: %w", err)
	}

	return seat, nil
}
