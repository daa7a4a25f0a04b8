// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dailyfictions/polls"
)

type Trigger string

const (
	TriggerLock   Trigger = "lock-weekly"
	TriggerUnlock Trigger = "unlock-weekly"
)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// Schedule is a fixed point in the week, in a given location
type Schedule struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

// ParseSchedule parses "fri 16:00" style specs
func ParseSchedule(expr string, loc *time.Location) (Schedule, error) {
	fields := strings.Fields(strings.ToLower(expr))
	if len(fields) != 2 {
		return Schedule{}, fmt.Errorf("schedule %q: want \"<weekday> HH:MM\"", expr)
	}

	day, ok := weekdays[fields[0][:min(3, len(fields[0]))]]
	if !ok {
		return Schedule{}, fmt.Errorf("schedule %q: unknown weekday %q", expr, fields[0])
	}

	clock, err := time.Parse("15:04", fields[1])
	if err != nil {
		return Schedule{}, fmt.Errorf("schedule %q: bad time %q", expr, fields[1])
	}

	if loc == nil {
		loc = time.UTC
	}
	return Schedule{Weekday: day, Hour: clock.Hour(), Minute: clock.Minute(), Location: loc}, nil
}

// Next returns the first occurrence strictly after t
func (s Schedule) Next(t time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	days := (int(s.Weekday) - int(local.Weekday()) + 7) % 7
	next := time.Date(local.Year(), local.Month(), local.Day()+days, s.Hour, s.Minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

func (s Schedule) String() string {
	loc := "UTC"
	if s.Location != nil {
		loc = s.Location.String()
	}
	return fmt.Sprintf("%s %02d:%02d %s", strings.ToLower(s.Weekday.String()[:3]), s.Hour, s.Minute, loc)
}

// Scheduler fires LockAll and ClearAll at their weekly times. It is an
// in-process stand-in for an external cron caller.
type Scheduler struct {
	controller *Controller
	lock       Schedule
	unlock     Schedule
	clock      polls.Clock
	wait       func(ctx context.Context, d time.Duration) bool
}

func NewScheduler(controller *Controller, lock, unlock Schedule, clock polls.Clock) *Scheduler {
	if clock == nil {
		clock = polls.SystemClock
	}
	return &Scheduler{
		controller: controller,
		lock:       lock,
		unlock:     unlock,
		clock:      clock,
		wait:       sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Next returns the trigger due soonest after now
func (s *Scheduler) Next(now time.Time) (Trigger, time.Time) {
	lockAt := s.lock.Next(now)
	unlockAt := s.unlock.Next(now)
	if unlockAt.Before(lockAt) {
		return TriggerUnlock, unlockAt
	}
	return TriggerLock, lockAt
}

// Run blocks until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("weekly scheduler started", "lock", s.lock.String(), "unlock", s.unlock.String())
	for {
		now := s.clock.Now()
		trigger, at := s.Next(now)
		slog.Info("next weekly trigger", "trigger", trigger, "at", at, "in", humanize.RelTime(at, now, "ago", "from now"))

		if !s.wait(ctx, at.Sub(now)) {
			return ctx.Err()
		}
		s.Fire(ctx, trigger)
	}
}

// Fire runs one trigger and logs the outcome. Errors are not returned; the
// next week's trigger still runs.
func (s *Scheduler) Fire(ctx context.Context, trigger Trigger) {
	switch trigger {
	case TriggerLock:
		result, err := s.controller.LockAll(ctx)
		if err != nil {
			slog.Error("scheduled weekly lock failed", "error", err, "locked", len(result.Rooms))
			return
		}
		slog.Info("scheduled weekly lock done", "rooms", result.Rooms)
	case TriggerUnlock:
		n, err := s.controller.ClearAll(ctx)
		if err != nil {
			slog.Error("scheduled weekly unlock failed", "error", err)
			return
		}
		slog.Info("scheduled weekly unlock done", "cleared", n)
	}
}
