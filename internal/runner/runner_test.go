package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillbench/internal/events"
	"fillbench/internal/strategy"
	"fillbench/internal/worker"
)

// fakeClock は呼ばれるたびに steps の時間だけ進む
func fakeClock(steps ...time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		t := now
		if i < len(steps) {
			now = now.Add(steps[i])
		}
		i++
		return t
	}
}

func noop(context.Context) error { return nil }

func TestBenchmarkAverage(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)
	// start/end のペアごとに 100ms, 200ms, 600ms
	r.now = fakeClock(100*time.Millisecond, 0, 200*time.Millisecond, 0, 600*time.Millisecond, 0)

	result, err := r.Benchmark(context.Background(), "Default (no threads)", 3, noop)
	require.NoError(t, err)

	assert.Equal(t, "Default (no threads)", result.Name)
	assert.Equal(t, 3, result.NumTests)
	assert.Equal(t, 0.3, result.AverageTime)
	assert.Equal(t, 900*time.Millisecond, result.Total)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 600 * time.Millisecond}, result.Trials)

	out := buf.String()
	assert.Contains(t, out, "\tBenchmarking Default (no threads)\n")
	assert.Contains(t, out, "Time diff = 0.1\n")
	assert.Contains(t, out, "Time diff = 0.6\n")
	assert.Contains(t, out, "\tAverage time taken (3 ops): 0.300s\n")
	assert.Equal(t, 3, strings.Count(out, "Time diff ="))
}

func TestBenchmarkRealClock(t *testing.T) {
	result, err := New(nil).Benchmark(context.Background(), "sleep", 2, func(context.Context) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, result.Trials, 2)
	for _, d := range result.Trials {
		assert.GreaterOrEqual(t, d, 5*time.Millisecond)
	}
	assert.GreaterOrEqual(t, result.AverageTime, 0.0)
}

func TestBenchmarkInvalidTrials(t *testing.T) {
	_, err := New(nil).Benchmark(context.Background(), "x", 0, noop)
	assert.ErrorIs(t, err, ErrInvalidTrials)
}

func TestBenchmarkStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	_, err := New(nil).Benchmark(context.Background(), "failing", 5, func(context.Context) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "trial 2")
	assert.Equal(t, 2, calls, "remaining trials must not run")
}

func TestBenchmarkStopsOnWorkerPanic(t *testing.T) {
	// 確保できないサイズでワーカー内の make がpanicする
	parallel := strategy.NewParallel(1<<62, 4, strategy.ModeData)
	calls := 0

	var err error
	require.NotPanics(t, func() {
		_, err = New(nil).Benchmark(context.Background(), "Threads (4 threads)", 3, func(ctx context.Context) error {
			calls++
			return parallel.Run(ctx)
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, worker.ErrWorkerPanic)
	assert.Contains(t, err.Error(), "trial 1")
	assert.Equal(t, 1, calls, "remaining trials must not run")
}

func TestBenchmarkCancelledBetweenTrials(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := New(nil).Benchmark(ctx, "cancel", 5, func(context.Context) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "in-flight trial completes, the next one does not start")
}

func TestBenchmarkTrialsAreSequential(t *testing.T) {
	running := 0
	maxRunning := 0

	_, err := New(nil).Benchmark(context.Background(), "seq", 4, func(context.Context) error {
		running++
		if running > maxRunning {
			maxRunning = running
		}
		time.Sleep(time.Millisecond)
		running--
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, maxRunning)
}

func TestBenchmarkPublishesEvents(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe()

	r := New(nil)
	r.SetEventBus(bus)
	_, err := r.Benchmark(context.Background(), "evt", 2, noop)
	require.NoError(t, err)

	want := []events.EventType{
		events.EventBenchmarkStart,
		events.EventTrialComplete,
		events.EventTrialComplete,
		events.EventBenchmarkComplete,
	}
	for _, typ := range want {
		select {
		case ev := <-ch:
			assert.Equal(t, typ, ev.Type)
			assert.Equal(t, "evt", ev.Strategy)
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout waiting for %s", typ)
		}
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.0004, 0},
		{0.0005, 0.001},
		{1.23456, 1.235},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round3(tt.in), "Round3(%v)", tt.in)
	}
}
