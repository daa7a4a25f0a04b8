// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cycle runs the weekly lock/unlock cycle across all rooms.

# Controller

	c := cycle.NewController(svc, nil) // nil: every fixed room

	result, err := c.LockAll(ctx) // lock each room's top proposal
	n, err := c.ClearAll(ctx)     // remove every room's pick

Per room the cycle is a two-state machine:

	UNLOCKED --LockAll--> LOCKED   (history appended)
	LOCKED   --LockAll--> LOCKED   (new pick, history appended again)
	LOCKED   --ClearAll-> UNLOCKED (history untouched)

Nothing here guards against double firing. Whoever calls LockAll must call
it once per cycle.

# Scheduler

Scheduler is optional. It computes the next trigger from a Clock and fires
it in process:

	lock, _ := cycle.ParseSchedule("fri 16:00", loc)
	unlock, _ := cycle.ParseSchedule("mon 00:00", loc)
	go cycle.NewScheduler(c, lock, unlock, polls.SystemClock).Run(ctx)

Deployments that use an external cron call the HTTP triggers instead.
*/
package cycle
