package screen

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haoyun/fundwatch/internal/api"
	"github.com/haoyun/fundwatch/internal/config"
	"github.com/haoyun/fundwatch/internal/logger"
	"github.com/haoyun/fundwatch/internal/portfolio"
	"github.com/haoyun/fundwatch/internal/ui"
)

func testContext(t *testing.T) *ui.Context {
	t.Helper()
	cfg := &config.Config{
		BaseURL:        "http://localhost:8000",
		RefreshSeconds: 15,
		BaseCurrency:   "CNY",
		RequestTimeout: 5,
	}
	client := api.NewClient(cfg.BaseURL, time.Second)
	return ui.NewContext(cfg, client, zap.NewNop(), logger.NewLogBuffer(16))
}

func testSnapshot(t *testing.T) *portfolio.Snapshot {
	t.Helper()
	snap, err := portfolio.DecodeSnapshot([]byte(`{
		"meta": {"updated_at": "2025-06-01 15:00:00", "refresh_seconds": 15, "base_currency": "CNY"},
		"totals": {"total_cost": 10000, "total_market_value": 10500, "total_pnl_amount": 500,
			"total_pnl_percent": 5, "successful_positions": 1, "failed_positions": 1},
		"positions": [
			{"asset_type": "fund", "code": "161725", "name": "招商中证白酒",
			 "units": 1000, "cost_price": 1.0, "current_price": 1.05, "change_percent": 1.5,
			 "cost_value": 1000, "market_value": 1050, "pnl_amount": 50, "pnl_percent": 5,
			 "status": "ok"},
			{"asset_type": "stock", "code": "600000", "name": "浦发银行",
			 "units": 200, "cost_price": 7.5, "current_price": null, "change_percent": null,
			 "cost_value": 1500, "market_value": null, "pnl_amount": null, "pnl_percent": null,
			 "status": "quote_failed"}
		]
	}`))
	require.NoError(t, err)
	return snap
}

func TestDashboardRendersSnapshot(t *testing.T) {
	s := NewDashboardScreen(testContext(t))
	s.SetSize(160, 40)

	_, _ = s.Update(ui.SnapshotMsg{Snapshot: testSnapshot(t)})
	out := s.View()

	assert.Contains(t, out, "招商中证白酒")
	assert.Contains(t, out, "161725")
	assert.Contains(t, out, "总成本")
	assert.Contains(t, out, "CNY 10,000.00")
	assert.Contains(t, out, "正常")
	assert.Contains(t, out, "异常")
	// Failed quote fields render as placeholders
	assert.Contains(t, out, "--")
}

func TestDashboardFetchFailureKeepsData(t *testing.T) {
	s := NewDashboardScreen(testContext(t))
	s.SetSize(160, 40)

	_, _ = s.Update(ui.SnapshotMsg{Snapshot: testSnapshot(t)})
	_, _ = s.Update(ui.FetchFailedMsg{Err: errors.New("接口请求失败: 500")})
	out := s.View()

	assert.Contains(t, out, "拉取数据失败：接口请求失败: 500")
	// Previously rendered rows stay on screen
	assert.Contains(t, out, "招商中证白酒")

	// The next successful fetch clears the banner
	_, _ = s.Update(ui.SnapshotMsg{Snapshot: testSnapshot(t)})
	assert.NotContains(t, s.View(), "拉取数据失败")
}

func TestDashboardDeleteResetsEditMode(t *testing.T) {
	ctx := testContext(t)
	s := NewDashboardScreen(ctx)
	s.SetSize(160, 40)

	snap := testSnapshot(t)
	_, _ = s.Update(ui.SnapshotMsg{Snapshot: snap})

	pos := snap.Positions[0]
	ctx.Edit.Enter(pos)
	require.True(t, ctx.Edit.Editing())

	_, cmd := s.Update(ui.DeleteDoneMsg{Identity: pos.Identity()})
	assert.False(t, ctx.Edit.Editing(), "deleting the position under edit must leave edit mode")
	assert.Contains(t, s.View(), "删除成功：fund:161725")

	// A resync follows every successful mutation
	require.NotNil(t, cmd)
	_, ok := cmd().(ui.RefreshRequestMsg)
	assert.True(t, ok)
}

func TestDashboardDeleteOtherPositionKeepsEditMode(t *testing.T) {
	ctx := testContext(t)
	s := NewDashboardScreen(ctx)
	s.SetSize(160, 40)

	snap := testSnapshot(t)
	_, _ = s.Update(ui.SnapshotMsg{Snapshot: snap})

	ctx.Edit.Enter(snap.Positions[0])
	_, _ = s.Update(ui.DeleteDoneMsg{Identity: snap.Positions[1].Identity()})
	assert.True(t, ctx.Edit.Editing())
}

func TestDashboardEditNotFound(t *testing.T) {
	s := NewDashboardScreen(testContext(t))
	s.SetSize(160, 40)

	_, _ = s.Update(ui.EditNotFoundMsg{Identity: portfolio.Identity{AssetType: "fund", Code: "161725"}})
	assert.Contains(t, s.View(), "未找到可编辑的持仓记录。")
}

func TestDashboardSanitizesHostileNames(t *testing.T) {
	s := NewDashboardScreen(testContext(t))
	s.SetSize(160, 40)

	snap, err := portfolio.DecodeSnapshot([]byte(`{
		"meta": {"updated_at": "", "refresh_seconds": 15, "base_currency": "CNY"},
		"totals": {"total_cost": 0, "total_market_value": 0, "total_pnl_amount": 0,
			"total_pnl_percent": 0, "successful_positions": 0, "failed_positions": 1},
		"positions": [
			{"asset_type": "stock", "code": "600000", "name": "evil[31mred<script>",
			 "units": 1, "cost_price": 1, "cost_value": 1, "status": "quote_failed"}
		]
	}`))
	require.NoError(t, err)

	_, _ = s.Update(ui.SnapshotMsg{Snapshot: snap})
	out := s.View()

	assert.False(t, strings.Contains(out, "\x1b[31m"), "position names must not smuggle ANSI sequences")
	assert.Contains(t, out, "evil")
}
