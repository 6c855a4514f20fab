package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunsImmediatelyAndRepeats(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	s := NewIntervalScheduler(10 * time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) {
		runs.Add(1)
	}))

	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Stop(context.Background()))
}

func TestCyclesNeverOverlap(t *testing.T) {
	t.Parallel()

	var active, maxActive atomic.Int32
	s := NewIntervalScheduler(time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) {
		cur := active.Add(1)
		if cur > maxActive.Load() {
			maxActive.Store(cur)
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	require.Equal(t, int32(1), maxActive.Load())
}

func TestStopEndsLoop(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32
	s := NewIntervalScheduler(5 * time.Millisecond)

	require.NoError(t, s.Start(context.Background(), func(time.Time) {
		runs.Add(1)
	}))

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, after, runs.Load())
}

func TestContextCancelEndsLoop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewIntervalScheduler(5 * time.Millisecond)

	require.NoError(t, s.Start(ctx, func(time.Time) {}))
	cancel()

	require.NoError(t, s.Stop(context.Background()))
}

func TestNilJobIsIgnored(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Millisecond)
	require.NoError(t, s.Start(context.Background(), nil))
	require.NoError(t, s.Stop(context.Background()))
}
