package service

import (
	"context"
	"time"
)

const defaultSweepInterval = time.Minute

// SweeperService evicts idle dialog sessions on a fixed interval. Eviction
// closes the dialog, which also cancels a running fix.
type SweeperService struct {
	dialogs *DialogService
}

func NewSweeperService(dialogs *DialogService) *SweeperService {
	return &SweeperService{dialogs: dialogs}
}

// Run ticks at the given interval until ctx is canceled, then closes every
// remaining session.
func (s *SweeperService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = defaultSweepInterval
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.dialogs.CloseAll()
			return
		case <-t.C:
			s.dialogs.Sweep()
		}
	}
}
