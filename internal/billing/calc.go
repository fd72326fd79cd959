// Package billing holds the charge arithmetic shared by bookings, laundry
// orders, memberships and event bookings: line-item totals, payment-status
// classification and stay/charter duration pricing.
//
// Estimate-path functions never return errors; malformed numeric input
// degrades to zero so a bad keystroke can never break a price preview.
// The strict gate for persisted charges lives in validate.go.
package billing

import (
	"math"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// PaymentStatus classifies a charge for badge rendering.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// OrderLine is one draft row of a purchasable quantity. Quantity and price
// components arrive as raw request values; coercion happens here.
// A composite laundry item carries one component per selected service, a
// single-axis catalog item carries exactly one.
type OrderLine struct {
	Quantity            interface{}   `json:"quantity"`
	UnitPriceComponents []interface{} `json:"unit_price_components"`
}

// lineQuantity coerces a raw quantity to a non-negative integer.
// Anything unparseable counts as zero.
func lineQuantity(v interface{}) int {
	q := cast.ToInt(v)
	if q < 0 {
		return 0
	}
	return q
}

// UnitPrice returns the effective unit price of a line: the sum of its
// price components. An unresolved component contributes nothing.
func (l OrderLine) UnitPrice() float64 {
	var sum float64
	for _, c := range l.UnitPriceComponents {
		sum += cast.ToFloat64(c)
	}
	return sum
}

// CalculateTotal computes the order subtotal over all lines.
func CalculateTotal(lines []OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += float64(lineQuantity(l.Quantity)) * l.UnitPrice()
	}
	return total
}

// ClassifyPayment derives the tri-state payment status from a charge.
// The comparison is exact: a zero-total charge with nothing paid counts as
// settled because 0 >= 0. That matches how receipts have always been
// badged here; change it only with a product decision.
func ClassifyPayment(totalAmount, paidAmount float64) PaymentStatus {
	switch {
	case paidAmount >= totalAmount:
		return StatusPaid
	case paidAmount > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// Balance returns the amount still due. A negative balance is an
// overpayment and is reported as-is, never clamped.
func Balance(totalAmount, paidAmount float64) float64 {
	return totalAmount - paidAmount
}

// Nights returns the stay length in nights, rounding partial days up.
// A check-out at or before check-in yields zero or a negative count;
// callers that persist a booking validate the range first.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// EventHours returns the billable charter hours for a hall, never below one.
func EventHours(start, end time.Time) int {
	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

// EventEstimate prices a hall charter. Hourly charters bill whole hours,
// daily charters bill whole 24h blocks; both are clamped to a minimum of
// one unit, unlike room nights.
func EventEstimate(start, end time.Time, chargeType string, hourlyRate, dailyRate float64) float64 {
	hours := EventHours(start, end)
	days := int(math.Ceil(float64(hours) / 24))
	if days < 1 {
		days = 1
	}
	if chargeType == "daily" {
		return dailyRate * float64(days)
	}
	return hourlyRate * float64(hours)
}

// ParseDate parses a date or datetime in whatever format the dashboard
// sends (ISO, slash dates, month names).
func ParseDate(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}
