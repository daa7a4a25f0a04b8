// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Daily Fictions API.

# Handler Types

Each handler is a struct over the polls service (and the catalog where it
renders titles):

  - RoomsHandler: the fixed room list
  - ProposalHandler: proposal submission and ranked standings
  - VotingHandler: vote and unvote for a session
  - LockHandler: current pick, manual lock, play history and export
  - CronHandler: the weekly lock and unlock triggers

Handlers are created via constructor functions:

	proposalHandler := handlers.NewProposalHandler(svc, cat)

# Sessions

Voting needs an opaque session id, read from the X-Session-Id header or the
session_id query parameter. Listing proposals with a session adds has_voted
to each entry.

# Errors

Service errors map onto status codes:

	polls.ErrNotFound     → 404
	polls.ErrInvalidInput → 400
	polls.ErrStorage      → 503 (retry with backoff)
	anything else         → 500

Voting twice or unvoting without a vote is not an error; the response
reports voted=false or removed=false.

# Weekly Cycle

	GET|POST /cron/lock-weekly   → LockWeekly (top proposal of every room)
	GET|POST /cron/unlock-weekly → UnlockWeekly (clears every current pick)

Both are registered behind middleware.RequireBearer.
*/
package handlers
