package dialog

import (
	"context"

	"securewatch/internal/models"
	"securewatch/internal/progress"
)

// FixDialog applies the canned automated fix. Submitting starts its own
// staged-progress run; the success notification is emitted when the run
// completes, and the dialog then waits for an explicit close. Closing at any
// point cancels the run and resets progress.
type FixDialog struct {
	base
	ctx      context.Context
	steps    []models.FixStep
	proposed []models.ProposedFix
	runner   *progress.Runner
	onError  func(error)
	onDone   func(progress.Snapshot)
}

func (d *FixDialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.viewLocked()
	snap := d.runner.Snapshot()
	v.Progress = &snap
	v.Options = map[string]any{
		"steps":          d.steps,
		"proposed_fixes": d.proposed,
	}
	return v
}

func (d *FixDialog) Submit(ctx context.Context, _ Decoder) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateClosed {
		return Outcome{}, ErrClosed
	}
	if d.runner.Snapshot().State == progress.StateCompleted {
		return Outcome{}, ErrAlreadyApplied
	}
	// The run outlives the request that started it.
	if err := d.runner.Start(d.ctx); err != nil {
		return Outcome{}, err
	}
	snap := d.runner.Snapshot()
	return Outcome{Progress: &snap}, nil
}

// Progress returns the current snapshot of the fix run.
func (d *FixDialog) Progress() progress.Snapshot {
	return d.runner.Snapshot()
}

// Updates is closed when the current run stops; nil before the first submit.
func (d *FixDialog) Updates() <-chan struct{} {
	return d.runner.Done()
}

// complete holds d.mu while notifying so a concurrent Close either lands
// before the notification, suppressing it, or waits until it is recorded.
func (d *FixDialog) complete(snap progress.Snapshot) {
	d.mu.Lock()
	if d.state == StateClosed {
		d.mu.Unlock()
		return
	}
	n := d.stamp(models.Notification{
		OccurredAt:  snap.CompletedAt.UTC(),
		Type:        models.NotificationFixApplied,
		Title:       "AI Fix Applied Successfully",
		Description: "The incident has been automatically resolved",
		Metadata:    map[string]any{"steps": snap.Steps},
	})
	err := d.notifier.Notify(d.ctx, n)
	d.mu.Unlock()

	if err != nil && d.onError != nil {
		d.onError(err)
	}
	if d.onDone != nil {
		d.onDone(snap)
	}
}

func toProgressSteps(steps []models.FixStep) []progress.Step {
	out := make([]progress.Step, len(steps))
	for i, s := range steps {
		out[i] = progress.Step{Label: s.Label, Duration: s.Duration}
	}
	return out
}
