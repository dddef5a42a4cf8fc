package chart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ValueLabelConfig controls how axis and tooltip values are printed.
type ValueLabelConfig struct {
	// Locale selects digit grouping and the decimal separator. The zero
	// value formats with root locale conventions.
	Locale language.Tag
	// DecimalPlaces picks the maximum number of fraction digits for a
	// value. Nil means DefaultDecimalPlaces.
	DecimalPlaces func(value float64) int
}

// DefaultDecimalPlaces prints large values as integers and small values
// with more precision.
func DefaultDecimalPlaces(value float64) int {
	switch {
	case value > 1000:
		return 0
	case value >= 2 && value <= 999:
		return 2
	default:
		return 3
	}
}

// Format renders value followed by unit. Trailing zero fraction digits are
// dropped.
func (c ValueLabelConfig) Format(value float64, unit string) string {
	places := DefaultDecimalPlaces
	if c.DecimalPlaces != nil {
		places = c.DecimalPlaces
	}
	p := message.NewPrinter(c.Locale)
	return p.Sprint(number.Decimal(value,
		number.MaxFractionDigits(places(value)),
		number.MinFractionDigits(0),
	)) + unit
}
