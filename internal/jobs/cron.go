// Package jobs runs scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"securewatch/internal/logger"

	"github.com/robfig/cron/v3"
)

const digestTimeout = time.Minute

type digester interface {
	RunWeeklyDigest(ctx context.Context) (bool, error)
}

// Cron schedules the weekly digest. Schedules use the five-field format; a
// CRON_TZ= prefix selects the time zone, UTC otherwise.
type Cron struct {
	log *logger.Logger
	svc digester
	loc *time.Location
	c   *cron.Cron
}

func NewCron(schedule string, svc digester, log *logger.Logger) (*Cron, error) {
	loc := time.UTC
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
	)
	cr := &Cron{log: log, svc: svc, loc: loc, c: c}
	if _, err := c.AddFunc(schedule, cr.weekly); err != nil {
		return nil, fmt.Errorf("digest schedule %q: %w", schedule, err)
	}
	return cr, nil
}

func (cr *Cron) Start() { cr.c.Start() }

// Stop halts the scheduler and waits for a running digest until ctx is done.
func (cr *Cron) Stop(ctx context.Context) {
	select {
	case <-cr.c.Stop().Done():
	case <-ctx.Done():
	}
}

// Next is the next scheduled digest time.
func (cr *Cron) Next() time.Time {
	entries := cr.c.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now().In(cr.loc))
}

func (cr *Cron) weekly() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	sent, err := cr.svc.RunWeeklyDigest(ctx)
	if err != nil {
		cr.log.Errorw("cron: digest failed", "err", err)
		return
	}
	cr.log.Infow("cron: weekly digest", "sent", sent)
}
