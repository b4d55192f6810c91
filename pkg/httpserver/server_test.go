package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashkit/pkg/httpserver"
)

func waitForAddr(t *testing.T, srv *httpserver.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		if a := srv.Addr(); a != nil {
			addr = a.String()
			return true
		}
		return false
	}, time.Second, 5*time.Millisecond)
	return addr
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	var hooked atomic.Bool
	srv := httpserver.New(
		httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 100 * time.Millisecond},
		httpserver.WithShutdownHook(func(context.Context) { hooked.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	addr := waitForAddr(t, srv)
	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	assert.True(t, hooked.Load(), "shutdown hook not executed")
}

func TestStartError(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.Config{Addr: ":invalid"})
	err := srv.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpserver.ErrStart))
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 50 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, http.NewServeMux()) }()
	waitForAddr(t, srv)

	err := srv.Run(context.Background(), http.NewServeMux())
	assert.ErrorIs(t, err, httpserver.ErrStart)

	cancel()
	require.NoError(t, <-done)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     []func(context.Context) error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "liveness",
			wantStatus: http.StatusOK,
			wantBody:   "ALIVE",
		},
		{
			name:       "ready",
			checks:     []func(context.Context) error{func(context.Context) error { return nil }},
			wantStatus: http.StatusOK,
			wantBody:   "READY",
		},
		{
			name: "not ready",
			checks: []func(context.Context) error{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("manager closed") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "NOT_READY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
