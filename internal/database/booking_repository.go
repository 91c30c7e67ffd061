package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/skyreserve/airline-backend/internal/models"
)

// BookingRepository handles database operations for the bookings and
// booking_allocations tables
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithAllocations creates a booking, its allocation rows and the
// seat flips as one transaction. Every targeted seat is claimed with a
// conditional update that only succeeds while is_booked is still FALSE;
// if any seat was taken in the meantime the whole transaction rolls
// back and a SeatConflictError is returned.
func (r *BookingRepository) CreateWithAllocations(booking *models.Booking, passengers []models.PassengerInput) (*models.BookingResponse, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if booking.BookingReference == "" {
		booking.BookingReference = uuid.New().String()
	}

	bookingQuery := `
		INSERT INTO bookings (
			booking_reference, customer_id, schedule_id,
			amount, payment_status, payment_method, booking_date
		) VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, booking_date, created_at, updated_at
	`

	err = tx.QueryRowx(bookingQuery,
		booking.BookingReference, booking.CustomerID, booking.ScheduleID,
		booking.Amount, booking.PaymentStatus, booking.PaymentMethod,
	).Scan(&booking.ID, &booking.BookingDate, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	seatClaimQuery := `
		UPDATE seat_slots
		SET is_booked = TRUE, booking_id = $1, updated_at = now()
		WHERE schedule_id = $2 AND row_number = $3 AND column_letter = $4
		  AND is_booked = FALSE
		RETURNING id, class, price
	`

	allocationQuery := `
		INSERT INTO booking_allocations (
			booking_id, schedule_id, seat_slot_id,
			first_name, last_name, gender, nationality, passport_number, age,
			row_number, column_letter, class, price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	allocations := make([]models.Allocation, 0, len(passengers))
	for _, p := range passengers {
		var seatSlotID int64
		var class models.SeatClass
		var price float64

		err := tx.QueryRowx(seatClaimQuery, booking.ID, booking.ScheduleID, p.RowNumber, p.ColumnLetter).
			Scan(&seatSlotID, &class, &price)
		if err != nil {
			if err == sql.ErrNoRows {
				// Seat is missing or already allocated; either way the
				// booking must not commit.
				return nil, &models.SeatConflictError{Seats: []string{p.SeatLabel()}}
			}
			return nil, fmt.Errorf("failed to claim seat %s: %w", p.SeatLabel(), err)
		}

		alloc := models.Allocation{
			BookingID:      booking.ID,
			ScheduleID:     booking.ScheduleID,
			SeatSlotID:     seatSlotID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Gender:         p.Gender,
			Nationality:    p.Nationality,
			PassportNumber: p.PassportNumber,
			Age:            p.Age,
			RowNumber:      p.RowNumber,
			ColumnLetter:   p.ColumnLetter,
			Class:          class,
			Price:          price,
		}

		err = tx.QueryRowx(allocationQuery,
			alloc.BookingID, alloc.ScheduleID, alloc.SeatSlotID,
			alloc.FirstName, alloc.LastName, alloc.Gender, alloc.Nationality,
			alloc.PassportNumber, alloc.Age,
			alloc.RowNumber, alloc.ColumnLetter, alloc.Class, alloc.Price,
		).Scan(&alloc.ID, &alloc.CreatedAt, &alloc.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create allocation for seat %s: %w", p.SeatLabel(), err)
		}

		allocations = append(allocations, alloc)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BookingResponse{Booking: booking, Allocations: allocations}, nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID int64) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, booking_reference, customer_id, schedule_id, amount,
		       payment_status, payment_method, booking_date, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	err := r.db.Get(booking, query, bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetByCustomerID retrieves all bookings for a customer, newest first
func (r *BookingRepository) GetByCustomerID(customerID int64) ([]models.Booking, error) {
	bookings := []models.Booking{}
	query := `
		SELECT id, booking_reference, customer_id, schedule_id, amount,
		       payment_status, payment_method, booking_date, created_at, updated_at
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC
	`

	if err := r.db.Select(&bookings, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to list bookings for customer: %w", err)
	}

	return bookings, nil
}

// GetAllocations retrieves the allocation rows of a booking
func (r *BookingRepository) GetAllocations(bookingID int64) ([]models.Allocation, error) {
	allocations := []models.Allocation{}
	query := `
		SELECT id, booking_id, schedule_id, seat_slot_id,
		       first_name, last_name, gender, nationality, passport_number, age,
		       row_number, column_letter, class, price, created_at, updated_at
		FROM booking_allocations
		WHERE booking_id = $1
		ORDER BY row_number, column_letter
	`

	if err := r.db.Select(&allocations, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	return allocations, nil
}

// TransitionPaymentStatus moves payment_status from one state to
// another. The guard on the current state makes repeated cancellations
// detectable: zero rows affected means the booking was not in the
// expected state.
func (r *BookingRepository) TransitionPaymentStatus(bookingID int64, from, to models.PaymentStatus) (bool, error) {
	query := `
		UPDATE bookings SET payment_status = $3, updated_at = now()
		WHERE id = $1 AND payment_status = $2
	`

	result, err := r.db.Exec(query, bookingID, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

// ReleaseSeats frees every seat held by a booking. Cancellation is
// refund-only for now, so nothing calls this on the cancel path yet;
// it exists so seat release can become an additional step there.
func (r *BookingRepository) ReleaseSeats(bookingID int64) (int64, error) {
	query := `
		UPDATE seat_slots
		SET is_booked = FALSE, booking_id = NULL, updated_at = now()
		WHERE booking_id = $1
	`

	result, err := r.db.Exec(query, bookingID)
	if err != nil {
		return 0, fmt.Errorf("failed to release seats: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
