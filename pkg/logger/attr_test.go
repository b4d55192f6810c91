package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashkit/pkg/logger"
)

type severity string

func (s severity) String() string { return string(s) }

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestNotificationAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		want    any
	}{
		{name: "notification id", attr: logger.NotificationID("info-1-1"), wantKey: "notification_id", want: "info-1-1"},
		{name: "severity", attr: logger.Severity(severity("warning")), wantKey: "severity", want: "warning"},
		{name: "duration", attr: logger.Duration(1500 * time.Millisecond), wantKey: "duration_ms", want: int64(1500)},
		{name: "count", attr: logger.Count(3), wantKey: "count", want: int64(3)},
		{name: "component", attr: logger.Component("notifications"), wantKey: "component", want: "notifications"},
		{name: "request id", attr: logger.RequestID("abc"), wantKey: "request_id", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantKey, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
