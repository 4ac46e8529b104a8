// Package view projects a portfolio snapshot into a display-ready view
// model. It is pure: given the same snapshot it always produces the same
// rows, independent of whatever renders them to a screen.
package view

import (
	"fmt"
	"strings"

	"github.com/haoyun/fundwatch/internal/format"
	"github.com/haoyun/fundwatch/internal/portfolio"
)

// Status labels for a position's quote state.
const (
	StatusLabelOK       = "正常"
	StatusLabelAbnormal = "异常"
)

// TotalsView is the formatted totals summary.
type TotalsView struct {
	TotalCost        string
	TotalMarketValue string
	TotalPnl         string
	PnlTrend         format.Trend
	QuoteStatus      string
}

// Row is one formatted position row. Identity rides along for action
// dispatch (edit/delete) without re-parsing display text.
type Row struct {
	Identity portfolio.Identity

	Name          string
	Code          string
	Units         string
	CostPrice     string
	CurrentPrice  string
	ChangePercent string
	CostValue     string
	MarketValue   string
	Pnl           string
	StatusLabel   string

	ChangeTrend format.Trend
	PnlTrend    format.Trend
	Abnormal    bool
}

// Cells returns the row's display cells in table column order.
func (r Row) Cells() []string {
	return []string{
		r.Name, r.Code, r.Units, r.CostPrice, r.CurrentPrice,
		r.ChangePercent, r.CostValue, r.MarketValue, r.Pnl, r.StatusLabel,
	}
}

// BuildTotals formats the aggregate figures for the summary panel.
func BuildTotals(totals portfolio.Totals, currency string) TotalsView {
	pnl := fmt.Sprintf("%s (%s)",
		format.Money(totals.TotalPnlAmount, currency),
		format.Percent(&totals.TotalPnlPercent))

	return TotalsView{
		TotalCost:        format.Money(totals.TotalCost, currency),
		TotalMarketValue: format.Money(totals.TotalMarketValue, currency),
		TotalPnl:         pnl,
		PnlTrend:         format.TrendOfValue(totals.TotalPnlAmount),
		QuoteStatus:      fmt.Sprintf("%d / %d", totals.SuccessfulPositions, totals.FailedPositions),
	}
}

// BuildRows formats one row per position, in snapshot order. The whole row
// set replaces the previous one; there is no diffing.
func BuildRows(positions []portfolio.Position, currency string) []Row {
	rows := make([]Row, 0, len(positions))
	for i := range positions {
		rows = append(rows, buildRow(&positions[i], currency))
	}
	return rows
}

func buildRow(pos *portfolio.Position, currency string) Row {
	statusLabel := StatusLabelOK
	abnormal := pos.Status != portfolio.StatusOK
	if abnormal {
		statusLabel = StatusLabelAbnormal
	}

	pnl := format.Placeholder
	if pos.PnlAmount != nil {
		pnl = fmt.Sprintf("%s (%s)",
			format.MoneyPtr(pos.PnlAmount, currency),
			format.Percent(pos.PnlPercent))
	}

	return Row{
		Identity: pos.Identity(),

		Name:          Sanitize(pos.Name),
		Code:          Sanitize(pos.Code),
		Units:         format.Number(pos.Units),
		CostPrice:     format.Price(pos.CostPrice),
		CurrentPrice:  format.PricePtr(pos.CurrentPrice),
		ChangePercent: format.Percent(pos.ChangePercent),
		CostValue:     format.Money(pos.CostValue, currency),
		MarketValue:   format.MoneyPtr(pos.MarketValue, currency),
		Pnl:           pnl,
		StatusLabel:   statusLabel,

		ChangeTrend: format.TrendOf(pos.ChangePercent),
		PnlTrend:    format.TrendOf(pos.PnlAmount),
		Abnormal:    abnormal,
	}
}

// Sanitize strips terminal escape and control bytes from user-supplied text
// before it is embedded in rendered output. A position name containing an
// ANSI sequence must display as inert text, never execute as markup.
func Sanitize(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == 0x1b {
			// Skip a CSI sequence through its final byte.
			if i+1 < len(runes) && runes[i+1] == '[' {
				i++
				for i+1 < len(runes) {
					i++
					if runes[i] >= 0x40 && runes[i] <= 0x7e {
						break
					}
				}
			}
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
