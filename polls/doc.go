// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements proposals, voting and room locking.

# Service

Service sits on top of the store interfaces and an injected Clock:

	svc := polls.NewService(st, st, st, polls.SystemClock)

	p, err := svc.Propose(ctx, "comedy", 10, models.ProposalOptions{Pitch: "..."})
	added, err := svc.Vote(ctx, "comedy", p.ID, sessionID)
	ranked, err := svc.Standings(ctx, "comedy", sessionID)
	pick, err := svc.Lock(ctx, "comedy", p.ID)

# Voting

At most one vote exists per (proposal, session). Voting twice and
unvoting without a vote are not errors; they return false.

# Locking

Lock re-validates that the proposal exists and belongs to the room, then
writes the pick and a history entry with the same timestamp as one unit.
Re-locking is allowed and appends history every time; the same film may
be played again.

# Errors

	ErrNotFound      unknown room, unknown proposal, proposal in another room
	ErrInvalidInput  missing movie id or session id
	ErrStorage       store failure; the only retryable class

Use errors.Is. ErrUnknownRoom, ErrProposalNotFound and ErrRoomMismatch all
match ErrNotFound.
*/
package polls
