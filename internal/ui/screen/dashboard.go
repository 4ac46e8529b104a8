package screen

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/portfolio"
	"github.com/haoyun/fundwatch/internal/ui"
	"github.com/haoyun/fundwatch/internal/ui/component"
	"github.com/haoyun/fundwatch/internal/ui/router"
	"github.com/haoyun/fundwatch/internal/ui/style"
	"github.com/haoyun/fundwatch/internal/view"
)

// DashboardScreen is the main screen: totals summary, positions table and
// the persistent fetch-error banner.
type DashboardScreen struct {
	ctx     *ui.Context
	header  *component.StatusHeader
	table   *component.Table
	helpBar *component.HelpBar

	rows       []view.Row
	totals     view.TotalsView
	hasData    bool
	fetchError string
	actionMsg  string
	actionErr  bool

	// Pending inline delete confirmation, nil when none
	confirmDelete *portfolio.Identity
	deleting      bool

	width  int
	height int
}

// NewDashboardScreen creates the dashboard
func NewDashboardScreen(ctx *ui.Context) *DashboardScreen {
	table := component.NewTable().
		SetColumns([]component.TableColumn{
			{Header: "名称", Width: 16, Align: lipgloss.Left},
			{Header: "代码", Width: 10, Align: lipgloss.Left},
			{Header: "份额/股数", Width: 12, Align: lipgloss.Right},
			{Header: "成本价", Width: 10, Align: lipgloss.Right},
			{Header: "现价", Width: 10, Align: lipgloss.Right},
			{Header: "涨跌幅", Width: 9, Align: lipgloss.Right},
			{Header: "持仓成本", Width: 14, Align: lipgloss.Right},
			{Header: "市值", Width: 14, Align: lipgloss.Right},
			{Header: "收益", Width: 20, Align: lipgloss.Right},
			{Header: "状态", Width: 6, Align: lipgloss.Center},
		})

	s := &DashboardScreen{
		ctx:     ctx,
		header:  component.NewStatusHeader(ctx.Cfg.BaseURL),
		table:   table,
		helpBar: component.NewHelpBar(),
	}
	s.helpBar.SetKeyBindings(ctx.Keys.ContextualHelp(ui.RouteDashboard))

	// Render cached data immediately when returning from a form
	if snap := ctx.Cache.Latest(); snap != nil {
		s.applySnapshot(snap)
	}
	return s
}

// Init triggers an immediate fetch. The polling tick chain is owned by the
// app model, so re-entering this screen never multiplies timers.
func (s *DashboardScreen) Init() tea.Cmd {
	return s.ctx.RefreshCmd()
}

// Update handles messages for the dashboard
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.SnapshotMsg:
		s.applySnapshot(msg.Snapshot)
		s.fetchError = ""
		return s, nil

	case ui.FetchFailedMsg:
		// Previous data stays on screen
		s.fetchError = fmt.Sprintf("拉取数据失败：%s", msg.Err.Error())
		return s, nil

	case ui.EditNotFoundMsg:
		s.setAction("未找到可编辑的持仓记录。", true)
		return s, nil

	case ui.DeleteDoneMsg:
		s.deleting = false
		if s.ctx.Edit.Editing() && s.ctx.Edit.Target() == msg.Identity {
			s.ctx.Edit.Reset()
		}
		s.setAction(fmt.Sprintf("删除成功：%s", msg.Identity), false)
		return s, func() tea.Msg { return ui.RefreshRequestMsg{} }

	case ui.DeleteFailedMsg:
		s.deleting = false
		s.setAction(fmt.Sprintf("删除失败：%s", msg.Err.Error()), true)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	// Inline delete confirmation takes over the keyboard
	if s.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			id := *s.confirmDelete
			s.confirmDelete = nil
			s.deleting = true
			return s, s.ctx.DeleteCmd(id)
		case "n", "N", "esc":
			s.confirmDelete = nil
			return s, nil
		}
		return s, nil
	}

	keys := s.ctx.Keys
	switch {
	case key.Matches(msg, keys.Quit):
		return s, tea.Quit

	case key.Matches(msg, keys.Up):
		s.table.MoveUp()

	case key.Matches(msg, keys.Down):
		s.table.MoveDown()

	case key.Matches(msg, keys.Refresh):
		return s, s.ctx.RefreshCmd()

	case key.Matches(msg, keys.NewPosition):
		return s, ui.Navigate(ui.RoutePositionForm)

	case key.Matches(msg, keys.Import):
		return s, ui.Navigate(ui.RouteImportForm)

	case key.Matches(msg, keys.Logs):
		return s, ui.Navigate(ui.RouteLogs)

	case key.Matches(msg, keys.Edit):
		if row, ok := s.selectedRow(); ok {
			// Resolve against a fresh snapshot so edits never start stale
			return s, s.ctx.ResolveEditCmd(row.Identity)
		}

	case key.Matches(msg, keys.Delete):
		if row, ok := s.selectedRow(); ok && !s.deleting {
			id := row.Identity
			s.confirmDelete = &id
		}
	}

	return s, nil
}

func (s *DashboardScreen) selectedRow() (view.Row, bool) {
	idx := s.table.GetSelectedRow()
	if idx < 0 || idx >= len(s.rows) {
		return view.Row{}, false
	}
	return s.rows[idx], true
}

func (s *DashboardScreen) applySnapshot(snap *portfolio.Snapshot) {
	s.header.SetSnapshot(snap)

	currency := snap.Meta.BaseCurrency
	s.totals = view.BuildTotals(snap.Totals, currency)
	s.rows = view.BuildRows(snap.Positions, currency)
	s.hasData = true

	tableRows := make([]component.TableRow, 0, len(s.rows))
	for _, row := range s.rows {
		cellStyles := map[int]lipgloss.Style{
			5: style.TrendStyle(row.ChangeTrend),
			8: style.TrendStyle(row.PnlTrend),
		}
		if row.Abnormal {
			cellStyles[9] = style.ErrorStyle
		} else {
			cellStyles[9] = style.SuccessStyle
		}
		tableRows = append(tableRows, component.TableRow{
			Data:       row.Cells(),
			CellStyles: cellStyles,
		})
	}
	s.table.SetRows(tableRows)
}

func (s *DashboardScreen) setAction(message string, isErr bool) {
	s.actionMsg = message
	s.actionErr = isErr
}

// View renders the dashboard
func (s *DashboardScreen) View() string {
	sections := []string{s.header.View()}

	if s.fetchError != "" {
		sections = append(sections, style.BannerStyle.Render(s.fetchError))
	}

	sections = append(sections, s.renderTotals())

	if s.hasData {
		if len(s.rows) == 0 {
			sections = append(sections, style.MutedStyle.Render("暂无持仓"))
		} else {
			sections = append(sections, s.table.View())
		}
	} else {
		sections = append(sections, style.MutedStyle.Render("正在加载..."))
	}

	if s.confirmDelete != nil {
		prompt := fmt.Sprintf("确认删除 %s 吗？ (y/n)", *s.confirmDelete)
		sections = append(sections, style.WarningStyle.Render(prompt))
	} else if s.deleting {
		sections = append(sections, style.MutedStyle.Render("删除中..."))
	} else if s.actionMsg != "" {
		if s.actionErr {
			sections = append(sections, style.ErrorStyle.Render(s.actionMsg))
		} else {
			sections = append(sections, style.SuccessStyle.Render(s.actionMsg))
		}
	}

	sections = append(sections, s.helpBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *DashboardScreen) renderTotals() string {
	if !s.hasData {
		return style.PanelStyle.Render(style.MutedStyle.Render("总成本 -- · 总市值 -- · 总收益 --"))
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		style.SubHeaderStyle.Render("总成本 "),
		s.totals.TotalCost,
		"   ",
		style.SubHeaderStyle.Render("总市值 "),
		s.totals.TotalMarketValue,
		"   ",
		style.SubHeaderStyle.Render("总收益 "),
		style.TrendStyle(s.totals.PnlTrend).Render(s.totals.TotalPnl),
		"   ",
		style.SubHeaderStyle.Render("行情 "),
		s.totals.QuoteStatus,
	)
	return style.PanelStyle.Render(line)
}

// SetSize adjusts layout to the terminal size
func (s *DashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
	s.table.SetSize(width, height)
	s.helpBar.SetWidth(width)
}
