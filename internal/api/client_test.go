package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haoyun/fundwatch/internal/portfolio"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func TestGetSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"updated_at": "2025-06-01 10:00:00", "refresh_seconds": 15, "base_currency": "CNY"},
			"totals": {"total_cost": 100, "total_market_value": 110, "total_pnl_amount": 10,
			           "total_pnl_percent": 10, "successful_positions": 1, "failed_positions": 0},
			"positions": [{"asset_type": "stock", "code": "600000", "name": "浦发银行",
			               "units": 100, "cost_price": 1, "cost_value": 100, "status": "ok"}]
		}`))
	})

	snap, err := client.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CNY", snap.Meta.BaseCurrency)
	require.Len(t, snap.Positions, 1)
}

func TestGetSnapshotStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetSnapshot(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Contains(t, err.Error(), "500")
}

func TestImportFunds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/portfolio/import-funds", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"items": [{"status": "added", "code": "161725", "amount": 1000, "units": 123.45}]}`))
	})

	items, err := client.ImportFunds(context.Background(), []ImportItem{{Code: "161725", Amount: 1000}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ImportAdded, items[0].Status)
	assert.InDelta(t, 123.45, items[0].Units, 1e-9)
}

func TestCreatePosition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/positions", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": "新增持仓成功"}`))
	})

	name := "浦发银行"
	msg, err := client.CreatePosition(context.Background(), CreatePositionRequest{
		AssetType: "stock", Code: "600000", Name: &name, Units: 100, CostPrice: 7.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "新增持仓成功", msg)
}

func TestUpdatePositionPathEncoding(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		assert.Equal(t, http.MethodPatch, r.Method)
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})

	_, err := client.UpdatePosition(context.Background(),
		portfolio.Identity{AssetType: "fund/etf", Code: "16 17"},
		UpdatePositionRequest{Units: 1, CostPrice: 1})
	require.NoError(t, err)
	assert.Equal(t, "/api/positions/fund%2Fetf/16%2017", gotPath)
}

func TestDeletePosition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/positions/stock/600000", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := client.DeletePosition(context.Background(), portfolio.Identity{AssetType: "stock", Code: "600000"})
	assert.NoError(t, err)
}

func TestStatusErrorPrefersDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "持仓已存在"}`))
	})

	_, err := client.CreatePosition(context.Background(), CreatePositionRequest{
		AssetType: "stock", Code: "600000", Units: 1, CostPrice: 1,
	})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "持仓已存在", err.Error())
}

func TestStatusErrorFallbackMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not json`))
	})

	err := client.DeletePosition(context.Background(), portfolio.Identity{AssetType: "stock", Code: "600000"})
	require.Error(t, err)
	assert.Equal(t, "删除失败: 502", err.Error())
}
