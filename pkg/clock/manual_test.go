package clock_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashkit/pkg/clock"
)

func TestManual_AdvanceFiresDueTimers(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Time{})
	var fired []string

	clk.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "slow") })
	clk.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "fast") })
	clk.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "fast-2") })

	clk.Advance(99 * time.Millisecond)
	assert.Empty(t, fired)

	clk.Advance(time.Millisecond)
	assert.Equal(t, []string{"fast", "fast-2"}, fired)

	clk.Advance(time.Second)
	assert.Equal(t, []string{"fast", "fast-2", "slow"}, fired)
	assert.Equal(t, 0, clk.Pending())
}

func TestManual_ZeroDelayDefersToNextAdvance(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Time{})
	var calls atomic.Int32

	clk.AfterFunc(0, func() { calls.Add(1) })
	assert.Equal(t, int32(0), calls.Load(), "callback must not run inside AfterFunc")

	clk.Advance(0)
	assert.Equal(t, int32(1), calls.Load())
}

func TestManual_NegativeDelayIsTreatedAsZero(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Time{})
	var calls atomic.Int32

	clk.AfterFunc(-time.Second, func() { calls.Add(1) })
	clk.Advance(0)
	assert.Equal(t, int32(1), calls.Load())
}

func TestManual_Stop(t *testing.T) {
	t.Parallel()

	t.Run("stop before deadline cancels", func(t *testing.T) {
		clk := clock.NewManual(time.Time{})
		var calls atomic.Int32

		tm := clk.AfterFunc(time.Second, func() { calls.Add(1) })
		require.True(t, tm.Stop())
		assert.False(t, tm.Stop(), "second stop reports already stopped")

		clk.Advance(2 * time.Second)
		assert.Equal(t, int32(0), calls.Load())
		assert.Equal(t, 0, clk.Pending())
	})

	t.Run("stop after fire returns false", func(t *testing.T) {
		clk := clock.NewManual(time.Time{})
		tm := clk.AfterFunc(time.Millisecond, func() {})
		clk.Advance(time.Millisecond)
		assert.False(t, tm.Stop())
	})
}

func TestManual_NowTracksDeadlinesDuringAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)

	var seen time.Time
	clk.AfterFunc(150*time.Millisecond, func() { seen = clk.Now() })

	clk.Advance(time.Second)
	assert.Equal(t, start.Add(150*time.Millisecond), seen)
	assert.Equal(t, start.Add(time.Second), clk.Now())
}

func TestManual_CallbackMaySchedule(t *testing.T) {
	t.Parallel()

	clk := clock.NewManual(time.Time{})
	var fired []int

	clk.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, 1)
		clk.AfterFunc(10*time.Millisecond, func() { fired = append(fired, 2) })
		clk.AfterFunc(time.Second, func() { fired = append(fired, 3) })
	})

	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, fired)
	assert.Equal(t, 1, clk.Pending())
}

func TestReal_AfterFunc(t *testing.T) {
	t.Parallel()

	clk := clock.Real()
	done := make(chan struct{})
	clk.AfterFunc(0, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "real timer did not fire")
	}

	stopped := clk.AfterFunc(time.Hour, func() {})
	assert.True(t, stopped.Stop())
}
