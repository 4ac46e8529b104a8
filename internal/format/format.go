// Package format renders numeric snapshot values into display strings:
// grouped fixed-point money and prices, signed percentages, and trend
// classification. All functions are pure.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is shown wherever the backend had no value to display.
const Placeholder = "--"

// Trend classifies a numeric delta for styling.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// String returns the CSS-class style name of the trend. Flat renders with no
// class, matching the neutral style.
func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "positive"
	case TrendDown:
		return "negative"
	default:
		return ""
	}
}

// TrendOf classifies a value: up for v > 0, down for v < 0, flat otherwise
// and for nil or NaN.
func TrendOf(value *float64) Trend {
	if value == nil || math.IsNaN(*value) {
		return TrendFlat
	}
	switch {
	case *value > 0:
		return TrendUp
	case *value < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// TrendOfValue is TrendOf for non-nullable fields.
func TrendOfValue(value float64) Trend {
	return TrendOf(&value)
}

// Money renders a currency amount with the sign ahead of the currency code:
// Money(-12.3, "CNY") == "-CNY 12.30".
func Money(value float64, currency string) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	return sign + currency + " " + fixed(math.Abs(value), 2)
}

// MoneyPtr renders a nullable currency amount.
func MoneyPtr(value *float64, currency string) string {
	if value == nil || math.IsNaN(*value) {
		return Placeholder
	}
	return Money(*value, currency)
}

// Percent renders a signed percentage with two decimals. Non-negative values
// carry an explicit leading "+". Nil and NaN render as the placeholder.
func Percent(value *float64) string {
	if value == nil || math.IsNaN(*value) {
		return Placeholder
	}
	sign := ""
	if *value >= 0 {
		sign = "+"
	} else {
		sign = "-"
	}
	return sign + fixed(math.Abs(*value), 2) + "%"
}

// Price renders a per-unit price with four decimal places.
func Price(value float64) string {
	return fixed(value, 4)
}

// PricePtr renders a nullable per-unit price.
func PricePtr(value *float64) string {
	if value == nil || math.IsNaN(*value) {
		return Placeholder
	}
	return Price(*value)
}

// Number renders a plain quantity with two decimals and grouping.
func Number(value float64) string {
	return fixed(value, 2)
}

// PlainNumber renders a value without grouping or padding, the shape numeric
// form inputs expect when prefilled.
func PlainNumber(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// fixed rounds to the given number of decimal places and groups the integer
// digits by thousands. decimal avoids the binary-float drift of fmt.Sprintf
// for values like 1.005.
func fixed(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Placeholder
	}
	s := decimal.NewFromFloat(value).StringFixed(places)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	grouped := groupThousands(intPart)
	if neg {
		return "-" + grouped + fracPart
	}
	return grouped + fracPart
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
