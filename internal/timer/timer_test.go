package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct{ connected bool }

func (s stubConn) Connected() bool { return s.connected }

type finishRecorder struct{ calls atomic.Int32 }

func (f *finishRecorder) finish(context.Context) error {
	f.calls.Add(1)
	return nil
}

func waitDone(t *testing.T, r *Round) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("round never ended")
	}
}

func waitProgress(t *testing.T, r *Round, want float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p := r.Progress(); p <= want+0.001 {
			assert.InDelta(t, want, p, 0.001)
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("progress stuck at %v, want %v", r.Progress(), want)
}

func TestHostAutoFinishOnExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}

	r := Start(context.Background(), clock, stubConn{connected: true}, nil, time.Minute, true, rec.finish)

	clock.BlockUntil(2) // deadline timer + progress ticker
	clock.Advance(time.Minute)

	waitDone(t, r)
	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Zero(t, r.Progress())
}

func TestNonHostNeverFinishes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}

	r := Start(context.Background(), clock, stubConn{connected: true}, nil, time.Minute, false, rec.finish)

	clock.BlockUntil(2)
	clock.Advance(time.Minute)

	waitDone(t, r)
	assert.Zero(t, rec.calls.Load())
	assert.Zero(t, r.Progress())
}

func TestDisconnectedHostSkipsFinish(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}

	r := Start(context.Background(), clock, stubConn{connected: false}, nil, time.Minute, true, rec.finish)

	clock.BlockUntil(2)
	clock.Advance(time.Minute)

	waitDone(t, r)
	assert.Zero(t, rec.calls.Load())
}

func TestStopEndsRoundWithoutFinish(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}

	r := Start(context.Background(), clock, stubConn{connected: true}, nil, time.Minute, true, rec.finish)

	clock.BlockUntil(2)
	r.Stop()
	r.Stop() // idempotent

	waitDone(t, r)
	assert.Zero(t, rec.calls.Load())
}

func TestContextCancelEndsRound(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}
	ctx, cancel := context.WithCancel(context.Background())

	r := Start(ctx, clock, stubConn{connected: true}, nil, time.Minute, true, rec.finish)

	clock.BlockUntil(2)
	cancel()

	waitDone(t, r)
	assert.Zero(t, rec.calls.Load())
}

func TestProgressCountsDown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := &finishRecorder{}

	r := Start(context.Background(), clock, stubConn{connected: true}, nil, time.Second, true, rec.finish)
	require.Equal(t, float64(100), r.Progress())

	// Step one tick interval at a time so every tick is observed.
	for i := 1; i <= 5; i++ {
		clock.BlockUntil(2)
		clock.Advance(100 * time.Millisecond)
		waitProgress(t, r, float64(100-i*10))
	}

	clock.BlockUntil(2)
	clock.Advance(500 * time.Millisecond)
	waitDone(t, r)
	assert.Zero(t, r.Progress())
	assert.Equal(t, int32(1), rec.calls.Load())
}

func TestProgressAtBounds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	start := clock.Now()
	r := &Round{duration: time.Minute, start: start}

	assert.InDelta(t, 100, r.progressAt(start), 0.001)
	assert.InDelta(t, 50, r.progressAt(start.Add(30*time.Second)), 0.001)
	assert.Zero(t, r.progressAt(start.Add(time.Minute)))
	assert.Zero(t, r.progressAt(start.Add(2*time.Minute)), "never negative")

	zero := &Round{duration: 0, start: start}
	assert.Zero(t, zero.progressAt(start))
}
