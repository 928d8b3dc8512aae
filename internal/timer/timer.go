package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// tickInterval drives progress recomputation for renderers.
const tickInterval = 100 * time.Millisecond

// Connectivity gates the auto-finish: a disconnected client must never
// fire destructive actions.
type Connectivity interface {
	Connected() bool
}

// Round counts one voting round down. Progress runs from 100 to 0; at
// zero the host dispatches the finish command, everyone else just stops
// and waits for the host or the server deadline.
type Round struct {
	clock  clockwork.Clock
	conn   Connectivity
	logger *slog.Logger

	duration time.Duration
	start    time.Time

	mu       sync.Mutex
	progress float64

	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// Start begins the countdown. finish is only invoked when isHost is
// true, exactly once, and only while connected. The round stops on ctx
// cancellation, Stop, or expiry, whichever comes first.
func Start(
	ctx context.Context,
	clock clockwork.Clock,
	conn Connectivity,
	logger *slog.Logger,
	duration time.Duration,
	isHost bool,
	finish func(context.Context) error,
) *Round {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Round{
		clock:    clock,
		conn:     conn,
		logger:   logger,
		duration: duration,
		start:    clock.Now(),
		progress: 100,
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
	}
	go r.run(ctx, isHost, finish)
	return r
}

func (r *Round) run(ctx context.Context, isHost bool, finish func(context.Context) error) {
	defer close(r.done)

	deadline := r.clock.NewTimer(r.duration)
	ticker := r.clock.NewTicker(tickInterval)
	defer func() {
		stopAndDrain(deadline)
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case now := <-ticker.Chan():
			r.setProgress(r.progressAt(now))
		case <-deadline.Chan():
			r.setProgress(0)
			if !isHost {
				return
			}
			if !r.conn.Connected() {
				r.logger.Warn("round expired while disconnected, skipping auto-finish")
				return
			}
			if err := finish(ctx); err != nil {
				r.logger.Error("auto-finish failed", "error", err)
			}
			return
		}
	}
}

func (r *Round) progressAt(now time.Time) float64 {
	if r.duration <= 0 {
		return 0
	}
	elapsed := now.Sub(r.start)
	remaining := 100 - float64(elapsed)/float64(r.duration)*100
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress reports the remaining share of the round in [0,100].
func (r *Round) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

func (r *Round) setProgress(p float64) {
	r.mu.Lock()
	r.progress = p
	r.mu.Unlock()
}

// Done closes when the round has ended for any reason.
func (r *Round) Done() <-chan struct{} {
	return r.done
}

// Stop tears the countdown down without finishing the session. Safe to
// call more than once.
func (r *Round) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func stopAndDrain(t clockwork.Timer) {
	if !t.Stop() {
		select {
		case <-t.Chan():
		default:
		}
	}
}
