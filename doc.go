// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Daily Fictions API server.

Daily Fictions runs one film poll per genre room. Anyone can propose a film,
sessions vote (one vote per proposal per session), and every week the top
proposal of each room is locked in as the room's pick and recorded in its
play history. The picks are cleared again at the start of the next week.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	CRON_SECRET=... DATABASE_URL=file:dailyfictions.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -cron-secret ...

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - CRON_SECRET (-cron-secret): Bearer secret for /cron endpoints
  - DATABASE_URL (-d): unless DATABASE_TYPE (-t) is memory

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default), postgres or memory
  - REDIS_ADDR: keep the vote ledger in redis
  - TMDB_API_KEY: show titles and posters
  - SCHEDULER_ENABLED: fire the weekly cycle in process instead of via /cron

# Architecture

  - rooms: The fixed room list
  - store: Proposal, vote and pick storage (sql, memory, redis)
  - ranking: Vote counting and ordering
  - polls: Service with the proposal, vote and lock operations
  - cycle: Weekly lock/clear controller and in-process scheduler
  - catalog: Movie metadata from TMDB
  - export: Play history spreadsheets
  - handlers, router, middleware: HTTP surface
  - auth: Bearer secret and session helpers
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
