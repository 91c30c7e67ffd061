package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyFlightNo indicates the flight number is empty
	ErrEmptyFlightNo = errors.New("flight number cannot be empty")

	// ErrInvalidFlightNo indicates the flight number is not in IATA form
	ErrInvalidFlightNo = errors.New("flight number must be an airline code followed by 1-4 digits, e.g. UL604")
)

// flightNoRegex matches a two or three character airline designator
// followed by a 1-4 digit flight number, per IATA convention.
var flightNoRegex = regexp.MustCompile(`^[A-Z0-9]{2,3}[0-9]{1,4}$`)

// FlightNoValidator validates airline flight numbers
type FlightNoValidator struct{}

// NewFlightNoValidator creates a new flight number validator instance
func NewFlightNoValidator() *FlightNoValidator {
	return &FlightNoValidator{}
}

// Validate checks a flight number. Accepts "ul 604", "UL-604" or
// "UL604" and the like; use Normalize to get the canonical form.
func (v *FlightNoValidator) Validate(flightNo string) error {
	normalized := v.Normalize(flightNo)
	if normalized == "" {
		return ErrEmptyFlightNo
	}
	if !flightNoRegex.MatchString(normalized) {
		return ErrInvalidFlightNo
	}
	return nil
}

// Normalize strips spaces and dashes and uppercases the flight number
func (v *FlightNoValidator) Normalize(flightNo string) string {
	normalized := strings.ToUpper(strings.TrimSpace(flightNo))
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized
}
