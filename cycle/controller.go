// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/ranking"
	"github.com/danielhkuo/dailyfictions/rooms"
)

// RoomLocker is the part of polls.Service the weekly cycle drives
type RoomLocker interface {
	Standings(ctx context.Context, room, session string) ([]models.RankedProposal, error)
	Lock(ctx context.Context, room, proposalID string) (models.LockedPick, error)
	ClearLocks(ctx context.Context) (int, error)
}

// LockResult lists the rooms that received a new pick, in room order
type LockResult struct {
	Rooms []string
	Picks map[string]models.LockedPick
}

// Controller runs the two weekly transitions over every room.
// It does not deduplicate: each LockAll call appends history.
type Controller struct {
	polls RoomLocker
	rooms []string
}

// NewController drives roomSlugs, or every fixed room when roomSlugs is nil
func NewController(polls RoomLocker, roomSlugs []string) *Controller {
	if roomSlugs == nil {
		roomSlugs = rooms.Slugs()
	}
	return &Controller{polls: polls, rooms: roomSlugs}
}

// LockAll locks the top-ranked proposal of every room. Rooms without
// proposals are skipped. A failing room does not stop the others; the
// failures are joined into the returned error alongside the partial result.
func (c *Controller) LockAll(ctx context.Context) (LockResult, error) {
	result := LockResult{Rooms: []string{}, Picks: map[string]models.LockedPick{}}
	var errs []error

	for _, room := range c.rooms {
		ranked, err := c.polls.Standings(ctx, room, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("rank %s: %w", room, err))
			continue
		}
		top, ok := ranking.Top(ranked)
		if !ok {
			slog.Debug("weekly lock skipped empty room", "room", room)
			continue
		}
		pick, err := c.polls.Lock(ctx, room, top.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("lock %s: %w", room, err))
			continue
		}
		result.Rooms = append(result.Rooms, room)
		result.Picks[room] = pick
	}

	slog.Info("weekly lock finished", "locked", len(result.Rooms), "failed", len(errs))
	return result, errors.Join(errs...)
}

// ClearAll removes every room's pick so voting reopens. History, proposals
// and votes are untouched.
func (c *Controller) ClearAll(ctx context.Context) (int, error) {
	return c.polls.ClearLocks(ctx)
}
