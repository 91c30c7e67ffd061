package models

import (
	"fmt"
	"time"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// Booking represents a purchase binding a customer to one or more seats
// on a schedule. Amount always equals the sum of the allocated seat
// prices at creation time.
type Booking struct {
	ID               int64         `json:"id" db:"id"`
	BookingReference string        `json:"booking_reference" db:"booking_reference"`
	CustomerID       int64         `json:"customer_id" db:"customer_id"`
	ScheduleID       int64         `json:"schedule_id" db:"schedule_id"`
	Amount           float64       `json:"amount" db:"amount"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod    string        `json:"payment_method" db:"payment_method"`
	BookingDate      time.Time     `json:"booking_date" db:"booking_date"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// Allocation links a booking to one seat and the passenger occupying it
type Allocation struct {
	ID             int64     `json:"id" db:"id"`
	BookingID      int64     `json:"booking_id" db:"booking_id"`
	ScheduleID     int64     `json:"schedule_id" db:"schedule_id"`
	SeatSlotID     int64     `json:"seat_slot_id" db:"seat_slot_id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Gender         string    `json:"gender" db:"gender"`
	Nationality    string    `json:"nationality" db:"nationality"`
	PassportNumber *string   `json:"passport_number,omitempty" db:"passport_number"`
	Age            *int      `json:"age,omitempty" db:"age"`
	RowNumber      int       `json:"row_number" db:"row_number"`
	ColumnLetter   string    `json:"column_letter" db:"column_letter"`
	Class          SeatClass `json:"class" db:"class"`
	Price          float64   `json:"price" db:"price"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PassengerInput describes one passenger and the seat they are booking
type PassengerInput struct {
	FirstName      string    `json:"first_name" binding:"required"`
	LastName       string    `json:"last_name" binding:"required"`
	Gender         string    `json:"gender" binding:"required"`
	Nationality    string    `json:"nationality" binding:"required"`
	PassportNumber *string   `json:"passport_number,omitempty"`
	Age            *int      `json:"age,omitempty"`
	RowNumber      int       `json:"row_number" binding:"required"`
	ColumnLetter   string    `json:"column_letter" binding:"required"`
	Class          SeatClass `json:"class" binding:"required"`
	Price          float64   `json:"price" binding:"required"`
}

// SeatLabel returns the seat position of this passenger, e.g. "7B"
func (p *PassengerInput) SeatLabel() string {
	return fmt.Sprintf("%d%s", p.RowNumber, p.ColumnLetter)
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	CustomerID    int64            `json:"customer_id" binding:"required"`
	ScheduleID    int64            `json:"schedule_id" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
	Amount        float64          `json:"amount" binding:"required"`
	Passengers    []PassengerInput `json:"passengers" binding:"required"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.CustomerID <= 0 {
		return NewValidationError("customer_id", "is required")
	}
	if r.ScheduleID <= 0 {
		return NewValidationError("schedule_id", "is required")
	}
	if r.PaymentMethod == "" {
		return NewValidationError("payment_method", "is required")
	}
	if len(r.Passengers) == 0 {
		return NewValidationError("passengers", "at least one passenger is required")
	}
	seen := make(map[string]bool, len(r.Passengers))
	for _, p := range r.Passengers {
		if p.FirstName == "" || p.LastName == "" {
			return NewValidationError("passengers", "passenger name is required")
		}
		if p.RowNumber <= 0 || p.ColumnLetter == "" {
			return NewValidationError("passengers", "each passenger needs a seat row and column")
		}
		label := p.SeatLabel()
		if seen[label] {
			return NewValidationError("passengers", fmt.Sprintf("seat %s listed more than once", label))
		}
		seen[label] = true
	}
	return nil
}

// BookingResponse is returned after a successful booking create
type BookingResponse struct {
	Booking     *Booking     `json:"booking"`
	Allocations []Allocation `json:"allocations"`
}

// RefundSummary is returned after a successful cancellation
type RefundSummary struct {
	BookingID        int64         `json:"booking_id"`
	BookingReference string        `json:"booking_reference"`
	RefundAmount     float64       `json:"refund_amount"`
	RefundPercentage float64       `json:"refund_percentage"`
	HoursToDeparture int           `json:"departure_in_hours"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
}
