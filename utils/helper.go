package utils

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Canonical persisted precision: quantities 4 decimals, prices/amounts 2.
const (
	QtyPrecision   = 4
	MoneyPrecision = 2
)

// ParseDecimal parses a decimal wire string. Accepts common user-formatted
// strings like "20,000" or "  1500.50 ". Never floats.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, ValidationError("InvalidAmount", "amount must not be empty")
	}
	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, ValidationError("InvalidAmount", "invalid decimal value: "+s)
	}
	return val, nil
}

// RoundMoney rounds half-up at the 2-decimal persistence boundary.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPrecision)
}

// RoundQty rounds half-up at the 4-decimal persistence boundary.
func RoundQty(d decimal.Decimal) decimal.Decimal {
	return d.Round(QtyPrecision)
}

func MoneyString(d decimal.Decimal) string {
	return d.StringFixed(MoneyPrecision)
}

func QtyString(d decimal.Decimal) string {
	return d.StringFixed(QtyPrecision)
}

// ValidateAmount enforces amount == round(qty * unitPrice, 2). The amount is
// caller-authoritative; it is checked here, never recomputed silently.
func ValidateAmount(qty, unitPrice, amount decimal.Decimal) error {
	expected := RoundMoney(qty.Mul(unitPrice))
	if !RoundMoney(amount).Equal(expected) {
		return ValidationError("AmountMismatch",
			"amount "+MoneyString(amount)+" does not equal qty x unit_price ("+MoneyString(expected)+")")
	}
	return nil
}

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ValidationError("InvalidDate", "invalid "+field+" format, expected YYYY-MM-DD")
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ProcessValidationErrors flattens binding failures into a field -> tag map
// for the error response body.
func ProcessValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorResponse := make(map[string]string)
	for _, ve := range errs {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
