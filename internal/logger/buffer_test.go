package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferRecentOrder(t *testing.T) {
	lb := NewLogBuffer(4)

	for i := 0; i < 3; i++ {
		lb.Add("info", fmt.Sprintf("msg-%d", i))
	}

	logs := lb.Recent(0)
	require.Len(t, logs, 3)
	assert.Equal(t, "msg-0", logs[0].Message)
	assert.Equal(t, "msg-2", logs[2].Message)
}

func TestLogBufferWrapAround(t *testing.T) {
	lb := NewLogBuffer(4)

	for i := 0; i < 10; i++ {
		lb.Add("info", fmt.Sprintf("msg-%d", i))
	}

	assert.Equal(t, 4, lb.Len())
	assert.Equal(t, uint64(10), lb.TotalEntries())

	logs := lb.Recent(0)
	require.Len(t, logs, 4)
	assert.Equal(t, "msg-6", logs[0].Message)
	assert.Equal(t, "msg-9", logs[3].Message)
}

func TestLogBufferRecentLimit(t *testing.T) {
	lb := NewLogBuffer(8)
	for i := 0; i < 5; i++ {
		lb.Add("info", fmt.Sprintf("msg-%d", i))
	}

	logs := lb.Recent(2)
	require.Len(t, logs, 2)
	assert.Equal(t, "msg-3", logs[0].Message)
	assert.Equal(t, "msg-4", logs[1].Message)
}

func TestTUILoggerWritesToBuffer(t *testing.T) {
	lb := NewLogBuffer(16)
	log, err := CreateTUILogger(false, lb)
	require.NoError(t, err)

	log.Info("snapshot refreshed", zap.Int("positions", 3))
	require.NoError(t, log.Sync())

	logs := lb.Recent(0)
	require.NotEmpty(t, logs)
	assert.Equal(t, "snapshot refreshed", logs[len(logs)-1].Message)
	assert.Equal(t, "info", logs[len(logs)-1].Level)
}

func TestTUILoggerRequiresBuffer(t *testing.T) {
	_, err := CreateTUILogger(false, nil)
	assert.Error(t, err)
}
