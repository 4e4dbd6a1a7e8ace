package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)
}

func TestAdapter_RoutesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Use(zap.New(core))

	log := NewSlogAdapter()
	log.Debug("hidden")
	log.Info("tool call finished", "tool", "octav_get_credits", "outcome", "success")
	log.Warn("tool call failed", "tool", "octav_get_nav")

	assert.Equal(t, 0, logs.FilterMessage("hidden").Len())

	finished := logs.FilterMessage("tool call finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, zapcore.InfoLevel, finished[0].Level)
	assert.Equal(t, "octav_get_credits", finished[0].ContextMap()["tool"])
	assert.Equal(t, "success", finished[0].ContextMap()["outcome"])

	failed := logs.FilterMessage("tool call failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestAdapter_AddsFixedAttributes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))

	NewSlogAdapter("component", "tools").Error("Tool call panicked", "tool", "octav_get_wallet")

	entries := logs.FilterMessage("Tool call panicked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tools", entries[0].ContextMap()["component"])
	assert.Equal(t, "octav_get_wallet", entries[0].ContextMap()["tool"])
}
