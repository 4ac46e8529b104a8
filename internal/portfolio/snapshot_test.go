package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `{
  "meta": {"updated_at": "2025-06-01 10:00:00", "refresh_seconds": 15, "base_currency": "CNY"},
  "totals": {
    "total_cost": 10000, "total_market_value": 10500,
    "total_pnl_amount": 500, "total_pnl_percent": 5.0,
    "successful_positions": 2, "failed_positions": 0
  },
  "positions": [
    {"asset_type": "fund", "code": "161725", "name": "招商中证白酒", "units": 1234.56,
     "cost_price": 1.1, "current_price": 1.2, "change_percent": 0.5,
     "cost_value": 1358.02, "market_value": 1481.47, "pnl_amount": 123.45,
     "pnl_percent": 9.09, "status": "ok"},
    {"asset_type": "stock", "code": "600000", "name": "浦发银行", "units": 100,
     "cost_price": 7.5, "current_price": null, "change_percent": null,
     "cost_value": 750, "market_value": null, "pnl_amount": null,
     "pnl_percent": null, "status": "quote_failed"}
  ]
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	assert.Equal(t, "CNY", snap.Meta.BaseCurrency)
	assert.Equal(t, 15, snap.Meta.RefreshSeconds)
	require.Len(t, snap.Positions, 2)

	fund := snap.Positions[0]
	require.NotNil(t, fund.CurrentPrice)
	assert.InDelta(t, 1.2, *fund.CurrentPrice, 1e-9)
	assert.Equal(t, StatusOK, fund.Status)

	stock := snap.Positions[1]
	assert.Nil(t, stock.CurrentPrice)
	assert.Nil(t, stock.PnlAmount)
	assert.NotEqual(t, StatusOK, stock.Status)
}

func TestDecodeSnapshotRejectsDuplicates(t *testing.T) {
	payload := `{
	  "meta": {"updated_at": "", "refresh_seconds": 15, "base_currency": "CNY"},
	  "totals": {},
	  "positions": [
	    {"asset_type": "fund", "code": "161725", "units": 1, "cost_price": 1, "cost_value": 1, "status": "ok"},
	    {"asset_type": "fund", "code": "161725", "units": 2, "cost_price": 2, "cost_value": 4, "status": "ok"}
	  ]
	}`
	_, err := DecodeSnapshot([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestDecodeSnapshotRejectsMissingCurrency(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"meta": {}, "totals": {}, "positions": []}`))
	assert.Error(t, err)
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"meta": 42`))
	assert.Error(t, err)
}

func TestSnapshotFind(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	pos := snap.Find(Identity{AssetType: "stock", Code: "600000"})
	require.NotNil(t, pos)
	assert.Equal(t, "浦发银行", pos.Name)

	assert.Nil(t, snap.Find(Identity{AssetType: "stock", Code: "000001"}))
}

func TestValidatePositionInput(t *testing.T) {
	assert.NoError(t, ValidatePositionInput("600000", 100, 7.5))

	assert.ErrorIs(t, ValidatePositionInput("   ", 100, 7.5), ErrCodeRequired)
	assert.ErrorIs(t, ValidatePositionInput("600000", 0, 7.5), ErrInvalidUnits)
	assert.ErrorIs(t, ValidatePositionInput("600000", -5, 7.5), ErrInvalidUnits)
	assert.ErrorIs(t, ValidatePositionInput("600000", math.NaN(), 7.5), ErrInvalidUnits)
	assert.ErrorIs(t, ValidatePositionInput("600000", 100, 0), ErrInvalidCostPrice)
	assert.ErrorIs(t, ValidatePositionInput("600000", 100, math.Inf(1)), ErrInvalidCostPrice)
}

func TestValidateImportInput(t *testing.T) {
	assert.NoError(t, ValidateImportInput("161725", 1000))

	assert.ErrorIs(t, ValidateImportInput("", 1000), ErrFundCodeRequired)
	assert.ErrorIs(t, ValidateImportInput("161725", 0), ErrInvalidFundAmount)
	assert.ErrorIs(t, ValidateImportInput("161725", -1), ErrInvalidFundAmount)
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount(" 1000.5 ")
	assert.True(t, ok)
	assert.InDelta(t, 1000.5, v, 1e-9)

	_, ok = ParseAmount("abc")
	assert.False(t, ok)

	_, ok = ParseAmount("")
	assert.False(t, ok)
}
