package billing

import (
	"strconv"
	"strings"
)

// Amounts are plain quantities of the display currency; no minor-unit
// bookkeeping is done anywhere in the system.

const (
	currencySymbol = "₦"
	currencyCode   = "NGN"
)

// FormatAmount renders an amount like "₦12,500" or "₦1,250.50".
// Whole amounts drop the decimals; fractional amounts keep two.
func FormatAmount(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	cents := int((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents = 0
	}

	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(currencySymbol)

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if cents > 0 {
		b.WriteByte('.')
		if cents < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(cents))
	}
	return b.String()
}

// FormatAmountCode renders "NGN 12,500" for outputs restricted to
// cp1252 fonts, where the naira sign has no glyph.
func FormatAmountCode(amount float64) string {
	return strings.Replace(FormatAmount(amount), currencySymbol, currencyCode+" ", 1)
}
