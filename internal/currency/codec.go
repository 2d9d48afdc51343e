// Package currency converts between decimal amounts and grouped decimal
// strings such as "1.234,56".
package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/domain"
)

// Codec parses and formats amounts with explicit separator characters.
type Codec struct {
	Thousands rune
	Decimal   rune
}

// BRL is the Brazilian convention: "." groups thousands, "," separates cents.
var BRL = Codec{Thousands: '.', Decimal: ','}

// Parse converts text such as "1.234,56" to a decimal. Surrounding spaces are
// ignored. Thousands separators are optional, but when present every group
// after the first must have exactly three digits; at most two fraction digits
// are accepted. Anything else yields a *domain.FormatError. Ungrouped input
// such as "1234,5" parses, so Format reproduces only canonical text.
func (c Codec) Parse(text string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return decimal.Zero, &domain.FormatError{Value: text}
	}

	var b strings.Builder
	seenDecimal := false
	grouped := false
	digits := 0
	run := 0 // digits since the last separator
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
			run++
		case r == c.Thousands:
			if seenDecimal || run == 0 || run > 3 || (grouped && run != 3) {
				return decimal.Zero, &domain.FormatError{Value: text}
			}
			grouped = true
			run = 0
		case r == c.Decimal:
			if seenDecimal || (grouped && run != 3) {
				return decimal.Zero, &domain.FormatError{Value: text}
			}
			seenDecimal = true
			run = 0
			b.WriteByte('.')
		default:
			return decimal.Zero, &domain.FormatError{Value: text}
		}
	}
	if seenDecimal && run > 2 {
		return decimal.Zero, &domain.FormatError{Value: text}
	}
	if !seenDecimal && grouped && run != 3 {
		return decimal.Zero, &domain.FormatError{Value: text}
	}
	if digits == 0 {
		return decimal.Zero, &domain.FormatError{Value: text}
	}

	normalized := b.String()
	if strings.HasPrefix(normalized, ".") {
		normalized = "0" + normalized
	}
	normalized = strings.TrimSuffix(normalized, ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, &domain.FormatError{Value: text}
	}
	return d, nil
}

// ParseNull is Parse for callers that treat a bad amount as "value absent".
func (c Codec) ParseNull(text string) (decimal.NullDecimal, error) {
	d, err := c.Parse(text)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Format renders an amount with exactly two fraction digits and grouped
// thousands, e.g. 1234.5 -> "1.234,50".
func (c Codec) Format(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.Sign() < 0 && !amount.Round(2).IsZero() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(c.Thousands)
		}
		b.WriteRune(r)
	}
	b.WriteRune(c.Decimal)
	b.WriteString(frac)
	return b.String()
}

// FormatNull formats a known amount and returns fallback otherwise.
func (c Codec) FormatNull(amount decimal.NullDecimal, fallback string) string {
	if !amount.Valid {
		return fallback
	}
	return c.Format(amount.Decimal)
}
