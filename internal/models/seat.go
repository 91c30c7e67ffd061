package models

import (
	"fmt"
	"time"
)

// SeatClass represents the cabin class of a seat
type SeatClass string

const (
	SeatClassEconomy  SeatClass = "Economy"
	SeatClassBusiness SeatClass = "Business"
	SeatClassFirst    SeatClass = "First"
)

// SeatSlot represents one sellable seat position on a schedule.
// (schedule_id, row_number, column_letter) is unique; is_booked flips
// false -> true exactly once per booking.
type SeatSlot struct {
	ID           int64     `json:"id" db:"id"`
	ScheduleID   int64     `json:"schedule_id" db:"schedule_id"`
	RowNumber    int       `json:"row_number" db:"row_number"`
	ColumnLetter string    `json:"column_letter" db:"column_letter"`
	Class        SeatClass `json:"class" db:"class"`
	Price        float64   `json:"price" db:"price"`
	IsBooked     bool      `json:"is_booked" db:"is_booked"`
	BookingID    *int64    `json:"booking_id,omitempty" db:"booking_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Label returns the human-readable seat position, e.g. "12C"
func (s *SeatSlot) Label() string {
	return fmt.Sprintf("%d%s", s.RowNumber, s.ColumnLetter)
}

// LayoutSection describes one contiguous block of rows sharing a class and price
type LayoutSection struct {
	Rows  []int
	Class SeatClass
	Price float64
}
