package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₦0"},
		{950, "₦950"},
		{12500, "₦12,500"},
		{1250.5, "₦1,250.50"},
		{1250.05, "₦1,250.05"},
		{1234567, "₦1,234,567"},
		{999.999, "₦1,000"},
		{-4500, "-₦4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

// PDF output runs on cp1252 core fonts, so amounts there carry the ISO
// code and must stay pure ASCII.
func TestFormatAmountCode(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{12500, "NGN 12,500"},
		{1250.5, "NGN 1,250.50"},
		{-4500, "-NGN 4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatAmountCode(tt.amount)
			assert.Equal(t, tt.want, got)
			for _, r := range got {
				assert.Less(t, r, rune(128))
			}
		})
	}
}
