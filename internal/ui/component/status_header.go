package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/portfolio"
	"github.com/haoyun/fundwatch/internal/ui/style"
)

// StatusHeader shows the backend connection and snapshot metadata line.
type StatusHeader struct {
	baseURL     string
	meta        portfolio.Meta
	quoteOK     int
	quoteFailed int
	hasData     bool
	style       StatusHeaderStyle
	width       int
}

// StatusHeaderStyle contains all styling for the status header
type StatusHeaderStyle struct {
	container  lipgloss.Style
	title      lipgloss.Style
	endpoint   lipgloss.Style
	metaGood   lipgloss.Style
	metaMuted  lipgloss.Style
	quoteGood  lipgloss.Style
	quoteBad   lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader(baseURL string) *StatusHeader {
	palette := style.DefaultPalette()

	return &StatusHeader{
		baseURL: baseURL,
		style: StatusHeaderStyle{
			container: lipgloss.NewStyle().
				Background(palette.Background).
				Foreground(palette.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 2).
				MarginBottom(1),

			title: lipgloss.NewStyle().
				Foreground(palette.Primary).
				Bold(true),

			endpoint: lipgloss.NewStyle().
				Foreground(palette.TextSecondary),

			metaGood: lipgloss.NewStyle().
				Foreground(palette.Text),

			metaMuted: lipgloss.NewStyle().
				Foreground(palette.TextMuted),

			quoteGood: lipgloss.NewStyle().
				Foreground(palette.Success).
				Bold(true),

			quoteBad: lipgloss.NewStyle().
				Foreground(palette.Error).
				Bold(true),
		},
	}
}

// SetSnapshot updates the header from the latest snapshot
func (sh *StatusHeader) SetSnapshot(snap *portfolio.Snapshot) {
	if snap == nil {
		return
	}
	sh.meta = snap.Meta
	sh.quoteOK = snap.Totals.SuccessfulPositions
	sh.quoteFailed = snap.Totals.FailedPositions
	sh.hasData = true
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
	sh.style.container = sh.style.container.Width(width - 4)
}

// View renders the status header
func (sh *StatusHeader) View() string {
	title := sh.style.title.Render("fundwatch")
	endpoint := sh.style.endpoint.Render(sh.baseURL)

	updatedAt := "--"
	currency := "--"
	refresh := "--"
	if sh.hasData {
		if sh.meta.UpdatedAt != "" {
			updatedAt = sh.meta.UpdatedAt
		}
		currency = sh.meta.BaseCurrency
		refresh = fmt.Sprintf("%ds", sh.meta.RefreshSeconds)
	}

	metaStyle := sh.style.metaMuted
	if sh.hasData {
		metaStyle = sh.style.metaGood
	}
	meta := metaStyle.Render(fmt.Sprintf("更新于 %s · %s · 每 %s 刷新", updatedAt, currency, refresh))

	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		title,
		" | ",
		endpoint,
		" | ",
		meta,
		" | ",
		sh.renderQuoteStatus(),
	)

	return sh.style.container.Render(content)
}

// renderQuoteStatus renders the per-position quote health counts
func (sh *StatusHeader) renderQuoteStatus() string {
	if !sh.hasData {
		return sh.style.metaMuted.Render("行情 --")
	}
	if sh.quoteFailed > 0 {
		return sh.style.quoteBad.Render(fmt.Sprintf("行情 %d / %d", sh.quoteOK, sh.quoteFailed))
	}
	return sh.style.quoteGood.Render(fmt.Sprintf("行情 %d / %d", sh.quoteOK, sh.quoteFailed))
}

// GetHeight returns the component height for layout calculations
func (sh *StatusHeader) GetHeight() int {
	return 3 // Border + padding + content
}
