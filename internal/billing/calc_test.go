package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []OrderLine
		want  float64
	}{
		{
			name: "single line",
			lines: []OrderLine{
				{Quantity: 3, UnitPriceComponents: []interface{}{500.0}},
			},
			want: 1500,
		},
		{
			name: "composite unit price sums components",
			lines: []OrderLine{
				{Quantity: 2, UnitPriceComponents: []interface{}{200.0, 300.0, 50.0}},
			},
			want: 1100,
		},
		{
			name: "string quantity parses",
			lines: []OrderLine{
				{Quantity: "4", UnitPriceComponents: []interface{}{250.0}},
			},
			want: 1000,
		},
		{
			name: "unparseable quantity counts as zero",
			lines: []OrderLine{
				{Quantity: "abc", UnitPriceComponents: []interface{}{999.0}},
				{Quantity: 1, UnitPriceComponents: []interface{}{100.0}},
			},
			want: 100,
		},
		{
			name: "negative quantity counts as zero",
			lines: []OrderLine{
				{Quantity: -3, UnitPriceComponents: []interface{}{100.0}},
			},
			want: 0,
		},
		{
			name: "unresolved price component contributes nothing",
			lines: []OrderLine{
				{Quantity: 2, UnitPriceComponents: []interface{}{nil, 150.0}},
			},
			want: 300,
		},
		{
			name:  "no lines",
			lines: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTotal(tt.lines), 0.0001)
		})
	}
}

func TestClassifyPayment(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		paid  float64
		want  PaymentStatus
	}{
		{"fully paid", 1000, 1000, StatusPaid},
		{"overpaid", 1000, 1200, StatusPaid},
		{"partial", 1000, 400, StatusPartial},
		{"unpaid", 1000, 0, StatusUnpaid},
		{"zero charge zero paid is settled", 0, 0, StatusPaid},
		{"zero charge with payment", 0, 50, StatusPaid},
		{"tiny partial", 1000, 0.01, StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPayment(tt.total, tt.paid))
		})
	}
}

func TestBalanceReportsOverpaymentAsNegative(t *testing.T) {
	assert.Equal(t, 600.0, Balance(1000, 400))
	assert.Equal(t, -200.0, Balance(1000, 1200))
	assert.Equal(t, 0.0, Balance(0, 0))
}

func TestNights(t *testing.T) {
	day := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04", s)
		require.NoError(t, err)
		return ts
	}

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"exact days", "2026-03-01 14:00", "2026-03-04 14:00", 3},
		{"partial day rounds up", "2026-03-01 14:00", "2026-03-02 18:00", 2},
		{"under a day is one night", "2026-03-01 14:00", "2026-03-01 20:00", 1},
		{"same instant is zero", "2026-03-01 14:00", "2026-03-01 14:00", 0},
		{"inverted range goes negative", "2026-03-02 14:00", "2026-03-01 14:00", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(day(tt.checkIn), day(tt.checkOut)))
		})
	}
}

func TestEventHours(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, EventHours(base, base.Add(2*time.Hour+30*time.Minute)))
	assert.Equal(t, 1, EventHours(base, base.Add(20*time.Minute)))
	assert.Equal(t, 1, EventHours(base, base), "zero-length charter still bills one hour")
	assert.Equal(t, 24, EventHours(base, base.Add(24*time.Hour)))
}

func TestEventEstimate(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		end        time.Time
		chargeType string
		want       float64
	}{
		{"hourly rounds partial hour up", base.Add(2*time.Hour + 30*time.Minute), "hourly", 3000},
		{"hourly minimum one hour", base.Add(10 * time.Minute), "hourly", 1000},
		{"daily exact two days", base.Add(48 * time.Hour), "daily", 10000},
		{"daily rounds partial day up", base.Add(25 * time.Hour), "daily", 10000},
		{"daily minimum one day", base.Add(3 * time.Hour), "daily", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EventEstimate(base, tt.end, tt.chargeType, 1000, 5000)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{
		"2026-03-01",
		"2026-03-01 14:00:00",
		"2026-03-01T14:00:00Z",
		"03/01/2026",
	} {
		_, err := ParseDate(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseDate("not a date")
	assert.Error(t, err)
}
