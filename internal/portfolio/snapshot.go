// Package portfolio defines the data model shared between the API client and
// the dashboard: the backend snapshot, position identity, and the client-side
// input checks that run before any mutation request.
package portfolio

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// StatusOK marks a position whose latest quote fetch succeeded. Any other
// status renders as abnormal.
const StatusOK = "ok"

// Identity uniquely names a position within a snapshot.
type Identity struct {
	AssetType string `json:"asset_type"`
	Code      string `json:"code"`
}

func (id Identity) String() string {
	return id.AssetType + ":" + id.Code
}

// Meta carries snapshot-level metadata produced by the backend.
type Meta struct {
	UpdatedAt      string `json:"updated_at"`
	RefreshSeconds int    `json:"refresh_seconds"`
	BaseCurrency   string `json:"base_currency"`
}

// Totals aggregates cost, market value and PnL across all positions.
type Totals struct {
	TotalCost           float64 `json:"total_cost"`
	TotalMarketValue    float64 `json:"total_market_value"`
	TotalPnlAmount      float64 `json:"total_pnl_amount"`
	TotalPnlPercent     float64 `json:"total_pnl_percent"`
	SuccessfulPositions int     `json:"successful_positions"`
	FailedPositions     int     `json:"failed_positions"`
}

// Position is a single tracked holding. Quote-derived fields are pointers:
// nil means the backend had no usable quote for this position.
type Position struct {
	AssetType     string   `json:"asset_type"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Units         float64  `json:"units"`
	CostPrice     float64  `json:"cost_price"`
	CurrentPrice  *float64 `json:"current_price"`
	ChangePercent *float64 `json:"change_percent"`
	CostValue     float64  `json:"cost_value"`
	MarketValue   *float64 `json:"market_value"`
	PnlAmount     *float64 `json:"pnl_amount"`
	PnlPercent    *float64 `json:"pnl_percent"`
	Status        string   `json:"status"`
}

// Identity returns the position's identity pair.
func (p *Position) Identity() Identity {
	return Identity{AssetType: p.AssetType, Code: p.Code}
}

// Snapshot is the full portfolio state returned by the backend at a point in
// time. It is replaced wholesale on every successful fetch.
type Snapshot struct {
	Meta      Meta       `json:"meta"`
	Totals    Totals     `json:"totals"`
	Positions []Position `json:"positions"`
}

// Find returns the position with the given identity, or nil.
func (s *Snapshot) Find(id Identity) *Position {
	for i := range s.Positions {
		if s.Positions[i].AssetType == id.AssetType && s.Positions[i].Code == id.Code {
			return &s.Positions[i]
		}
	}
	return nil
}

// DecodeSnapshot parses and validates a snapshot payload. Malformed payloads
// are rejected here rather than surfacing as zero values deep in the UI.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if err := validateSnapshot(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func validateSnapshot(snap *Snapshot) error {
	if strings.TrimSpace(snap.Meta.BaseCurrency) == "" {
		return errors.New("snapshot missing meta.base_currency")
	}

	seen := make(map[Identity]struct{}, len(snap.Positions))
	for i := range snap.Positions {
		pos := &snap.Positions[i]
		if strings.TrimSpace(pos.Code) == "" {
			return fmt.Errorf("snapshot position %d has empty code", i)
		}
		id := pos.Identity()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("snapshot contains duplicate position %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
