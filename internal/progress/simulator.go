// Package progress animates a fixed list of named steps to completion.
package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State of a Simulator.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
)

// NoStep is the active index reported when no step is active.
const NoStep = -1

var (
	ErrNoSteps        = errors.New("progress: at least one step is required")
	ErrAlreadyRunning = errors.New("progress: simulation already running")
)

// Step is one (label, duration) pair.
type Step struct {
	Label    string
	Duration time.Duration
}

// Snapshot is a point-in-time view of a Simulator.
type Snapshot struct {
	State       State     `json:"state"`
	ActiveIndex int       `json:"active_index"`
	ActiveStep  string    `json:"active_step,omitempty"`
	Percent     float64   `json:"percent"`
	Steps       int       `json:"steps"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Simulator is a staged-progress state machine. It holds no timers: callers
// drive it with Advance, usually from a Runner.
type Simulator struct {
	mu    sync.Mutex
	steps []Step

	state       State
	index       int
	percent     float64
	stepStarted time.Time
	startedAt   time.Time
	completedAt time.Time
}

// NewSimulator copies steps into a new idle simulator.
func NewSimulator(steps []Step) (*Simulator, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	for i, st := range steps {
		if st.Duration <= 0 {
			return nil, fmt.Errorf("progress: step %d (%q) has non-positive duration %s", i, st.Label, st.Duration)
		}
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Simulator{steps: cp, state: StateIdle, index: NoStep}, nil
}

// Steps returns a copy of the configured steps.
func (s *Simulator) Steps() []Step {
	cp := make([]Step, len(s.steps))
	copy(cp, s.steps)
	return cp
}

// TotalDuration is the sum of all step durations.
func (s *Simulator) TotalDuration() time.Duration {
	var d time.Duration
	for _, st := range s.steps {
		d += st.Duration
	}
	return d
}

// Start moves an idle or completed simulator to running at step 0.
func (s *Simulator) Start(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return ErrAlreadyRunning
	}
	s.state = StateRunning
	s.index = 0
	s.percent = 0
	s.stepStarted = now
	s.startedAt = now
	s.completedAt = time.Time{}
	return nil
}

// Advance applies the time elapsed up to now. Several steps may finish in a
// single call when ticks are coarse.
func (s *Simulator) Advance(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := float64(len(s.steps))
	for s.state == StateRunning {
		step := s.steps[s.index]
		elapsed := now.Sub(s.stepStarted)
		if elapsed < step.Duration {
			frac := 0.0
			if elapsed > 0 {
				frac = float64(elapsed) / float64(step.Duration)
			}
			s.raise((float64(s.index) + frac) / n * 100)
			break
		}

		s.stepStarted = s.stepStarted.Add(step.Duration)
		s.index++
		if s.index >= len(s.steps) {
			s.state = StateCompleted
			s.index = NoStep
			s.percent = 100
			s.completedAt = s.stepStarted
			break
		}
		s.raise(float64(s.index) / n * 100)
	}
	return s.snapshotLocked()
}

// Cancel returns the simulator to idle from any state.
func (s *Simulator) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.index = NoStep
	s.percent = 0
	s.stepStarted = time.Time{}
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}
}

// Snapshot returns the current view without advancing.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// raise keeps percent monotonic within a run.
func (s *Simulator) raise(p float64) {
	if p > s.percent {
		s.percent = p
	}
}

func (s *Simulator) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       s.state,
		ActiveIndex: s.index,
		Percent:     s.percent,
		Steps:       len(s.steps),
		StartedAt:   s.startedAt,
		CompletedAt: s.completedAt,
	}
	if s.state == StateRunning {
		snap.ActiveStep = s.steps[s.index].Label
	}
	return snap
}
