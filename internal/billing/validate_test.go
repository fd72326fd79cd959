package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrderLines(t *testing.T) {
	valid := []OrderLine{
		{Quantity: 2, UnitPriceComponents: []interface{}{500.0}},
		{Quantity: "3", UnitPriceComponents: []interface{}{100.0, 250.0}},
	}
	assert.NoError(t, ValidateOrderLines(valid))

	tests := []struct {
		name  string
		lines []OrderLine
	}{
		{"empty order", nil},
		{"unparseable quantity", []OrderLine{
			{Quantity: "two", UnitPriceComponents: []interface{}{100.0}},
		}},
		{"negative quantity", []OrderLine{
			{Quantity: -1, UnitPriceComponents: []interface{}{100.0}},
		}},
		{"no price components", []OrderLine{
			{Quantity: 1, UnitPriceComponents: nil},
		}},
		{"unparseable price", []OrderLine{
			{Quantity: 1, UnitPriceComponents: []interface{}{"free"}},
		}},
		{"negative price", []OrderLine{
			{Quantity: 1, UnitPriceComponents: []interface{}{-50.0}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateOrderLines(tt.lines))
		})
	}
}

func TestValidateOrderLinesStricterThanEstimate(t *testing.T) {
	// The estimate path tolerates this line as zero; the persistence gate
	// must reject it outright.
	lines := []OrderLine{
		{Quantity: "garbage", UnitPriceComponents: []interface{}{100.0}},
	}
	assert.Equal(t, 0.0, CalculateTotal(lines))
	assert.Error(t, ValidateOrderLines(lines))
}

func TestValidateCharge(t *testing.T) {
	assert.NoError(t, ValidateCharge(1000, 0))
	assert.NoError(t, ValidateCharge(0, 0))
	assert.NoError(t, ValidateCharge(1000, 1500))
	assert.Error(t, ValidateCharge(-1, 0))
	assert.Error(t, ValidateCharge(1000, -0.01))
}
