// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs one job on a cron schedule. A run that is still going when
// the next one is due causes that next run to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	entryID cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
}

// New accepts standard five-field specs and descriptors such as "@hourly" or
// "@every 30m".
func New(spec string, job func(context.Context) error) (*Scheduler, error) {
	if job == nil {
		return nil, errors.New("job must not be nil")
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{cron: c, ctx: ctx, cancel: cancel}

	id, err := c.AddFunc(spec, func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			slog.Error("scheduled job failed", "spec", spec, "error", err)
			return
		}
		slog.Info("scheduled job completed", "spec", spec, "duration_ms", time.Since(start).Milliseconds())
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	s.entryID = id

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the running job's context and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// Next is the time of the next run, or zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}
