package progress

import (
	"context"
	"sync"
	"time"
)

// DefaultTick is the sampling interval used when none is configured.
const DefaultTick = 100 * time.Millisecond

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// OnTick registers a callback invoked after every tick while running.
func OnTick(fn func(Snapshot)) RunnerOption {
	return func(r *Runner) { r.onTick = fn }
}

// OnComplete registers a callback invoked once when a run completes.
func OnComplete(fn func(Snapshot)) RunnerOption {
	return func(r *Runner) { r.onComplete = fn }
}

// Runner drives one Simulator on fixed-interval ticks in its own goroutine.
type Runner struct {
	sim  *Simulator
	tick time.Duration
	now  func() time.Time

	onTick     func(Snapshot)
	onComplete func(Snapshot)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner wraps sim. A non-positive tick falls back to DefaultTick.
func NewRunner(sim *Simulator, tick time.Duration, opts ...RunnerOption) *Runner {
	if tick <= 0 {
		tick = DefaultTick
	}
	r := &Runner{sim: sim, tick: tick, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a run. The run stops on completion, Cancel or ctx cancellation.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.sim.Start(r.now()); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.loop(runCtx, done)
	return nil
}

// Cancel stops any pending ticks and resets the simulator to idle.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.sim.Cancel()
}

// Done is closed when the current run's goroutine exits. It is nil before
// the first Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Snapshot returns the simulator's current view.
func (r *Runner) Snapshot() Snapshot {
	return r.sim.Snapshot()
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	t := time.NewTicker(r.tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			snap := r.sim.Advance(r.now())
			if ctx.Err() != nil {
				return
			}
			if r.onTick != nil {
				r.onTick(snap)
			}
			if snap.State != StateRunning {
				if snap.State == StateCompleted && r.onComplete != nil {
					r.onComplete(snap)
				}
				return
			}
		}
	}
}
