package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haoyun/fundwatch/internal/portfolio"
)

func TestEditStateRoundTrip(t *testing.T) {
	es := NewEditState()
	initialTarget := es.Target()
	assert.False(t, es.Editing())

	pos := portfolio.Position{
		AssetType: "stock", Code: "600000", Name: "浦发银行",
		Units: 100, CostPrice: 7.5,
	}
	es.Enter(pos)

	assert.True(t, es.Editing())
	assert.Equal(t, portfolio.Identity{AssetType: "stock", Code: "600000"}, es.Target())
	assert.Equal(t, "浦发银行", es.Prefill().Name)

	// Enter followed by Reset restores the initial non-editing state.
	es.Reset()
	assert.False(t, es.Editing())
	assert.Equal(t, initialTarget, es.Target())
	assert.Equal(t, portfolio.Position{}, es.Prefill())
}

func TestSnapshotCache(t *testing.T) {
	cache := NewSnapshotCache()
	assert.Nil(t, cache.Latest())

	snap := &portfolio.Snapshot{
		Meta: portfolio.Meta{BaseCurrency: "CNY"},
	}
	cache.Store(snap)

	require.NotNil(t, cache.Latest())
	assert.Same(t, snap, cache.Latest())
	assert.False(t, cache.FetchedAt().IsZero())

	cache.RecordFailure()
	successes, failures := cache.Stats()
	assert.Equal(t, uint64(1), successes)
	assert.Equal(t, uint64(1), failures)
}
