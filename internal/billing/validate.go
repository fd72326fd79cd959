package billing

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ValidateOrderLines is the strict gate applied before an order is
// persisted. The estimate path forgives malformed input by coercing it to
// zero; a financial record must not be created from such input, so here
// every quantity and price component has to parse cleanly.
func ValidateOrderLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errors.New("order has no items")
	}
	for i, l := range lines {
		qty, err := cast.ToIntE(l.Quantity)
		if err != nil {
			return errors.Wrapf(err, "item %d: quantity is not a number", i+1)
		}
		if qty < 0 {
			return errors.Errorf("item %d: quantity must not be negative", i+1)
		}
		if len(l.UnitPriceComponents) == 0 {
			return errors.Errorf("item %d: no price resolved", i+1)
		}
		for _, c := range l.UnitPriceComponents {
			price, err := cast.ToFloat64E(c)
			if err != nil {
				return errors.Wrapf(err, "item %d: price is not a number", i+1)
			}
			if price < 0 {
				return errors.Errorf("item %d: price must not be negative", i+1)
			}
		}
	}
	return nil
}

// ValidateCharge checks the invariants of a persisted charge.
func ValidateCharge(totalAmount, paidAmount float64) error {
	if totalAmount < 0 {
		return errors.New("total amount must not be negative")
	}
	if paidAmount < 0 {
		return errors.New("paid amount must not be negative")
	}
	return nil
}
