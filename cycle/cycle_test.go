// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
	"github.com/danielhkuo/dailyfictions/store"
)

var myt = time.FixedZone("MYT", 8*60*60)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestController(t *testing.T) (*Controller, *polls.Service, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)}
	svc := polls.NewService(mem, mem, mem, clock)
	return NewController(svc, nil), svc, mem
}

func TestLockAll_LocksTopProposal(t *testing.T) {
	c, svc, _ := newTestController(t)
	ctx := context.Background()

	a, err := svc.Propose(ctx, "comedy", 10, models.ProposalOptions{})
	require.NoError(t, err)
	b, err := svc.Propose(ctx, "comedy", 20, models.ProposalOptions{})
	require.NoError(t, err)
	for _, s := range []string{"s1", "s2"} {
		_, err := svc.Vote(ctx, "comedy", b.ID, s)
		require.NoError(t, err)
	}

	result, err := c.LockAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"comedy"}, result.Rooms)
	assert.Equal(t, b.ID, result.Picks["comedy"].ProposalID)

	played, err := svc.Played(ctx, "comedy", 10)
	require.NoError(t, err)
	require.Len(t, played, 1)
	assert.Equal(t, int64(20), played[0].MovieID)

	pick, ok, err := svc.Locked(ctx, "comedy")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(20), pick.MovieID)
	assert.NotEqual(t, a.ID, pick.ProposalID)
}

func TestLockAll_SkipsEmptyRooms(t *testing.T) {
	c, svc, _ := newTestController(t)
	ctx := context.Background()

	result, err := c.LockAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Rooms)

	_, ok, err := svc.Locked(ctx, "horror")
	require.NoError(t, err)
	assert.False(t, ok)

	played, err := svc.Played(ctx, "horror", 0)
	require.NoError(t, err)
	assert.Empty(t, played)
}

func TestLockAll_RoomWithNoVotesStillLocks(t *testing.T) {
	c, svc, _ := newTestController(t)
	ctx := context.Background()

	first, err := svc.Propose(ctx, "drama", 30, models.ProposalOptions{})
	require.NoError(t, err)
	_, err = svc.Propose(ctx, "drama", 31, models.ProposalOptions{})
	require.NoError(t, err)

	result, err := c.LockAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, result.Picks["drama"].ProposalID)
}

func TestLockAll_TwiceAppendsHistoryTwice(t *testing.T) {
	c, svc, _ := newTestController(t)
	ctx := context.Background()

	_, err := svc.Propose(ctx, "fantasy", 50, models.ProposalOptions{})
	require.NoError(t, err)

	_, err = c.LockAll(ctx)
	require.NoError(t, err)
	_, err = c.LockAll(ctx)
	require.NoError(t, err)

	played, err := svc.Played(ctx, "fantasy", 0)
	require.NoError(t, err)
	assert.Len(t, played, 2)
}

func TestClearAll_KeepsHistoryAndVotes(t *testing.T) {
	c, svc, _ := newTestController(t)
	ctx := context.Background()

	p, err := svc.Propose(ctx, "comedy", 10, models.ProposalOptions{})
	require.NoError(t, err)
	q, err := svc.Propose(ctx, "thriller", 11, models.ProposalOptions{})
	require.NoError(t, err)
	_, err = svc.Vote(ctx, "comedy", p.ID, "s1")
	require.NoError(t, err)

	_, err = c.LockAll(ctx)
	require.NoError(t, err)

	n, err := c.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, room := range []string{"comedy", "thriller"} {
		_, ok, err := svc.Locked(ctx, room)
		require.NoError(t, err)
		assert.False(t, ok, room)

		played, err := svc.Played(ctx, room, 0)
		require.NoError(t, err)
		assert.Len(t, played, 1, room)
	}

	list, err := svc.Proposals(ctx, "thriller")
	require.NoError(t, err)
	assert.Equal(t, q.ID, list[0].ID)

	count, err := svc.VoteCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type brokenLocker struct {
	RoomLocker
	failRoom string
}

func (b brokenLocker) Lock(ctx context.Context, room, id string) (models.LockedPick, error) {
	if room == b.failRoom {
		return models.LockedPick{}, polls.ErrStorage
	}
	return b.RoomLocker.Lock(ctx, room, id)
}

func TestLockAll_ContinuesPastFailingRoom(t *testing.T) {
	_, svc, _ := newTestController(t)
	ctx := context.Background()

	for _, room := range []string{"comedy", "action"} {
		_, err := svc.Propose(ctx, room, 1, models.ProposalOptions{})
		require.NoError(t, err)
	}

	c := NewController(brokenLocker{RoomLocker: svc, failRoom: "comedy"}, nil)
	result, err := c.LockAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, polls.ErrStorage))
	assert.Equal(t, []string{"action"}, result.Rooms)
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		expr    string
		want    Schedule
		wantErr bool
	}{
		{expr: "fri 16:00", want: Schedule{Weekday: time.Friday, Hour: 16, Minute: 0, Location: myt}},
		{expr: "Monday 00:30", want: Schedule{Weekday: time.Monday, Hour: 0, Minute: 30, Location: myt}},
		{expr: "fri", wantErr: true},
		{expr: "someday 10:00", wantErr: true},
		{expr: "sat 25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseSchedule(tt.expr, myt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleNext(t *testing.T) {
	lock := Schedule{Weekday: time.Friday, Hour: 16, Location: myt}

	// Thursday noon -> Friday 16:00 the same week
	thu := time.Date(2025, 3, 6, 12, 0, 0, 0, myt)
	assert.Equal(t, time.Date(2025, 3, 7, 16, 0, 0, 0, myt), lock.Next(thu))

	// exactly at the trigger -> next week
	fri := time.Date(2025, 3, 7, 16, 0, 0, 0, myt)
	assert.Equal(t, time.Date(2025, 3, 14, 16, 0, 0, 0, myt), lock.Next(fri))

	// Friday 16:30 UTC is already Saturday in Malaysia -> next Friday
	utc := time.Date(2025, 3, 7, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 16, 0, 0, 0, myt), lock.Next(utc))
}

func TestScheduler_RunFiresInOrder(t *testing.T) {
	_, svc, _ := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Propose(ctx, "comedy", 10, models.ProposalOptions{})
	require.NoError(t, err)

	lock, err := ParseSchedule("fri 16:00", myt)
	require.NoError(t, err)
	unlock, err := ParseSchedule("mon 00:00", myt)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, 3, 6, 12, 0, 0, 0, myt)}
	s := NewScheduler(NewController(svc, nil), lock, unlock, clock)

	var waited []time.Time
	var lockedAfterFirst bool
	s.wait = func(ctx context.Context, d time.Duration) bool {
		if len(waited) == 1 {
			_, lockedAfterFirst, _ = svc.Locked(ctx, "comedy")
		}
		if len(waited) == 2 {
			return false
		}
		at := clock.Now().Add(d)
		waited = append(waited, at)
		clock.Set(at)
		return true
	}

	require.NoError(t, s.Run(ctx))
	require.Len(t, waited, 2)
	assert.True(t, waited[0].Equal(time.Date(2025, 3, 7, 16, 0, 0, 0, myt)))
	assert.True(t, waited[1].Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, myt)))
	assert.True(t, lockedAfterFirst, "lock trigger should fire first")

	_, ok, err := svc.Locked(ctx, "comedy")
	require.NoError(t, err)
	assert.False(t, ok, "unlock trigger should clear the pick")

	played, err := svc.Played(ctx, "comedy", 0)
	require.NoError(t, err)
	assert.Len(t, played, 1)
}
