package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haoyun/fundwatch/internal/api"
	"github.com/haoyun/fundwatch/internal/portfolio"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// SnapshotMsg carries a freshly fetched snapshot
type SnapshotMsg struct {
	Snapshot *portfolio.Snapshot
}

// FetchFailedMsg reports a failed snapshot fetch; the previous render stays
// on screen and the error goes to the persistent banner.
type FetchFailedMsg struct {
	Err error
}

// RefreshTickMsg fires on the polling interval
type RefreshTickMsg struct {
	At time.Time
}

// RefreshRequestMsg asks the app to resynchronize with the backend, issued
// after every successful mutation.
type RefreshRequestMsg struct{}

// EditResolvedMsg carries the position found by an edit lookup
type EditResolvedMsg struct {
	Position portfolio.Position
}

// EditNotFoundMsg reports that the row's identity no longer exists in the
// latest snapshot (deleted concurrently by another client).
type EditNotFoundMsg struct {
	Identity portfolio.Identity
}

// ImportDoneMsg reports a successful fund import
type ImportDoneMsg struct {
	Item api.ImportResultItem
}

// ImportFailedMsg reports a failed fund import
type ImportFailedMsg struct {
	Err error
}

// PositionSavedMsg reports a successful create or update
type PositionSavedMsg struct {
	Message string
}

// PositionSaveFailedMsg reports a failed create or update
type PositionSaveFailedMsg struct {
	Err error
}

// DeleteDoneMsg reports a successful delete
type DeleteDoneMsg struct {
	Identity portfolio.Identity
}

// DeleteFailedMsg reports a failed delete
type DeleteFailedMsg struct {
	Identity portfolio.Identity
	Err      error
}

// Route represents different screens in the application
type Route int

const (
	RouteDashboard Route = iota
	RoutePositionForm
	RouteImportForm
	RouteLogs
)

// Navigate returns a command requesting a screen change
func Navigate(to Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: to}
	}
}

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RoutePositionForm:
		return "position_form"
	case RouteImportForm:
		return "import_form"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
