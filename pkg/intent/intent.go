// Package intent classifies free-text user messages into a small closed
// set of labels via substring tests. It is pure and stateless: the same
// message always yields the same label.
package intent

import "strings"

// Label is one of the recognized user intents
type Label string

const (
	CancelTrip         Label = "Cancel Trip"
	FlightStatus       Label = "Flight Status"
	SeatAvailability   Label = "Seat Availability"
	BookTicketForm     Label = "Book Ticket Form"
	GetBookings        Label = "Get Bookings"
	CancellationPolicy Label = "Get Cancellation Policy"
	Unknown            Label = "Unknown"
)

// Classify maps a raw user message to an intent label. Matching is
// case-insensitive, first match wins. Order matters: policy-qualified
// cancel phrases are matched before a bare "cancel", "status" before
// "seat", and the bookings phrases before "book" (which they contain).
func Classify(message string) Label {
	m := strings.ToLower(message)

	switch {
	case strings.Contains(m, "cancel") && strings.Contains(m, "policy"):
		return CancellationPolicy
	case strings.Contains(m, "cancel"):
		return CancelTrip
	case strings.Contains(m, "status"):
		return FlightStatus
	case strings.Contains(m, "seat"):
		return SeatAvailability
	case strings.Contains(m, "my bookings"), strings.Contains(m, "get bookings"):
		return GetBookings
	case strings.Contains(m, "book"):
		return BookTicketForm
	default:
		return Unknown
	}
}
