package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/haoyun/fundwatch/internal/format"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(0, 0, 1, 0)
)

// Layout styles
var PanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(palette.TextMuted).
	Padding(1, 2).
	Margin(0, 1)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Banner style for the persistent fetch-error message
var BannerStyle = lipgloss.NewStyle().
	Foreground(palette.Error).
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(palette.Error).
	Padding(0, 1)

// Trend styles keyed by format.Trend
var (
	TrendUpStyle = lipgloss.NewStyle().
			Foreground(palette.TrendUp).
			Bold(true)

	TrendDownStyle = lipgloss.NewStyle().
			Foreground(palette.TrendDown).
			Bold(true)

	TrendFlatStyle = lipgloss.NewStyle().
			Foreground(palette.Text)
)

// TrendStyle maps a trend classification to its display style.
func TrendStyle(trend format.Trend) lipgloss.Style {
	switch trend {
	case format.TrendUp:
		return TrendUpStyle
	case format.TrendDown:
		return TrendDownStyle
	default:
		return TrendFlatStyle
	}
}