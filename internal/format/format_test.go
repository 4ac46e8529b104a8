package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestMoney(t *testing.T) {
	assert.Equal(t, "-CNY 12.30", Money(-12.3, "CNY"))
	assert.Equal(t, "CNY 0.00", Money(0, "CNY"))
	assert.Equal(t, "CNY 1,234,567.89", Money(1234567.891, "CNY"))
	assert.Equal(t, "USD 999.99", Money(999.99, "USD"))
	assert.Equal(t, "-CNY 1,000.00", Money(-1000, "CNY"))
}

func TestMoneyPtr(t *testing.T) {
	assert.Equal(t, "CNY 12.30", MoneyPtr(ptr(12.3), "CNY"))
	assert.Equal(t, Placeholder, MoneyPtr(nil, "CNY"))
	assert.Equal(t, Placeholder, MoneyPtr(ptr(math.NaN()), "CNY"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, Placeholder, Percent(nil))
	assert.Equal(t, Placeholder, Percent(ptr(math.NaN())))

	// Zero formats with a non-negative sign.
	assert.Equal(t, "+0.00%", Percent(ptr(0)))
	assert.Equal(t, "+5.50%", Percent(ptr(5.5)))
	assert.Equal(t, "-3.25%", Percent(ptr(-3.25)))
	assert.Equal(t, "+1,234.00%", Percent(ptr(1234)))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "1.2000", Price(1.2))
	assert.Equal(t, "1,234.5678", Price(1234.5678))
	assert.Equal(t, "0.0001", Price(0.0001))
	assert.Equal(t, Placeholder, PricePtr(nil))
	assert.Equal(t, "7.5000", PricePtr(ptr(7.5)))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1,000.00", Number(1000))
	assert.Equal(t, "123.45", Number(123.45))
	assert.Equal(t, "0.00", Number(0))
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendUp, TrendOf(ptr(0.0001)))
	assert.Equal(t, TrendDown, TrendOf(ptr(-0.0001)))
	assert.Equal(t, TrendFlat, TrendOf(ptr(0)))
	assert.Equal(t, TrendFlat, TrendOf(nil))
	assert.Equal(t, TrendFlat, TrendOf(ptr(math.NaN())))
}

func TestTrendString(t *testing.T) {
	assert.Equal(t, "positive", TrendUp.String())
	assert.Equal(t, "negative", TrendDown.String())
	assert.Equal(t, "", TrendFlat.String())
}
