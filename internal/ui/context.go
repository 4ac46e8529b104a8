package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/haoyun/fundwatch/internal/api"
	"github.com/haoyun/fundwatch/internal/config"
	"github.com/haoyun/fundwatch/internal/logger"
	"github.com/haoyun/fundwatch/internal/portfolio"
	"github.com/haoyun/fundwatch/internal/ui/state"
)

// Context bundles the shared application services. Screens receive it at
// construction instead of reaching for globals.
type Context struct {
	Cfg       *config.Config
	Client    *api.Client
	Logger    *zap.Logger
	LogBuffer *logger.LogBuffer
	Edit      *state.EditState
	Cache     *state.SnapshotCache
	Keys      KeyMap
}

// NewContext wires the shared services for the UI.
func NewContext(cfg *config.Config, client *api.Client, log *zap.Logger, buf *logger.LogBuffer) *Context {
	return &Context{
		Cfg:       cfg,
		Client:    client,
		Logger:    log,
		LogBuffer: buf,
		Edit:      state.NewEditState(),
		Cache:     state.NewSnapshotCache(),
		Keys:      DefaultKeyMap(),
	}
}

// RefreshCmd fetches the current snapshot. Failures never clear the cached
// snapshot; the dashboard keeps rendering the last good data.
func (c *Context) RefreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		snap, err := c.Client.GetSnapshot(ctx)
		if err != nil {
			c.Cache.RecordFailure()
			c.Logger.Warn("snapshot fetch failed", zap.Error(err))
			return FetchFailedMsg{Err: err}
		}

		c.Cache.Store(snap)
		c.Logger.Debug("snapshot fetched",
			zap.Int("positions", len(snap.Positions)),
			zap.String("updated_at", snap.Meta.UpdatedAt))
		return SnapshotMsg{Snapshot: snap}
	}
}

// ScheduleRefresh arms the next polling tick. Each tick schedules exactly one
// successor, so a failed fetch retries on the same fixed interval.
func (c *Context) ScheduleRefresh() tea.Cmd {
	return tea.Tick(c.Cfg.RefreshInterval(), func(t time.Time) tea.Msg {
		return RefreshTickMsg{At: t}
	})
}

// ResolveEditCmd re-fetches the snapshot and looks the identity up in the
// fresh copy, so editing always starts from current backend values.
func (c *Context) ResolveEditCmd(id portfolio.Identity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		snap, err := c.Client.GetSnapshot(ctx)
		if err != nil {
			c.Cache.RecordFailure()
			return FetchFailedMsg{Err: err}
		}
		c.Cache.Store(snap)

		pos := snap.Find(id)
		if pos == nil {
			return EditNotFoundMsg{Identity: id}
		}
		return EditResolvedMsg{Position: *pos}
	}
}

// ImportCmd submits a single-fund import. Item-level failure is surfaced the
// same way as a transport failure.
func (c *Context) ImportCmd(item api.ImportItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		items, err := c.Client.ImportFunds(ctx, []api.ImportItem{item})
		if err != nil {
			c.Logger.Warn("fund import failed", zap.String("code", item.Code), zap.Error(err))
			return ImportFailedMsg{Err: err}
		}
		if len(items) == 0 {
			return ImportFailedMsg{Err: errors.New("基金数据不可用")}
		}

		result := items[0]
		if result.Status == api.ImportFailed {
			msg := result.Error
			if msg == "" {
				msg = "基金数据不可用"
			}
			c.Logger.Warn("fund import rejected", zap.String("code", item.Code), zap.String("reason", msg))
			return ImportFailedMsg{Err: errors.New(msg)}
		}

		c.Logger.Info("fund imported",
			zap.String("code", result.Code),
			zap.String("status", result.Status),
			zap.Float64("units", result.Units))
		return ImportDoneMsg{Item: result}
	}
}

// CreateCmd creates a new position.
func (c *Context) CreateCmd(req api.CreatePositionRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		msg, err := c.Client.CreatePosition(ctx, req)
		if err != nil {
			c.Logger.Warn("create position failed", zap.String("code", req.Code), zap.Error(err))
			return PositionSaveFailedMsg{Err: err}
		}
		c.Logger.Info("position created", zap.String("asset_type", req.AssetType), zap.String("code", req.Code))
		return PositionSavedMsg{Message: msg}
	}
}

// UpdateCmd applies a partial update to the position under edit.
func (c *Context) UpdateCmd(id portfolio.Identity, req api.UpdatePositionRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		msg, err := c.Client.UpdatePosition(ctx, id, req)
		if err != nil {
			c.Logger.Warn("update position failed", zap.Stringer("identity", id), zap.Error(err))
			return PositionSaveFailedMsg{Err: err}
		}
		c.Logger.Info("position updated", zap.Stringer("identity", id))
		return PositionSavedMsg{Message: msg}
	}
}

// DeleteCmd removes a position by identity.
func (c *Context) DeleteCmd(id portfolio.Identity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Cfg.HTTPTimeout())
		defer cancel()

		if err := c.Client.DeletePosition(ctx, id); err != nil {
			c.Logger.Warn("delete position failed", zap.Stringer("identity", id), zap.Error(err))
			return DeleteFailedMsg{Identity: id, Err: err}
		}
		c.Logger.Info("position deleted", zap.Stringer("identity", id))
		return DeleteDoneMsg{Identity: id}
	}
}
