package services

import "math"

// Refund tiers by hours remaining before scheduled departure. There is
// no zero tier: any cancellation, however late, refunds the 20% floor.
const (
	refundTierEarlyHours = 48
	refundTierLateHours  = 24

	refundPctEarly = 0.9
	refundPctMid   = 0.5
	refundPctFloor = 0.2
)

// RefundPercentage selects the refund tier for a cancellation
func RefundPercentage(hoursToDeparture float64) float64 {
	switch {
	case hoursToDeparture >= refundTierEarlyHours:
		return refundPctEarly
	case hoursToDeparture >= refundTierLateHours:
		return refundPctMid
	default:
		return refundPctFloor
	}
}

// RefundAmount computes the refunded amount for a booking. Rounding is
// half away from zero (math.Round), so amount=1000 at the 90% tier
// refunds exactly 900.
func RefundAmount(amount, percentage float64) float64 {
	return math.Round(amount * percentage)
}
