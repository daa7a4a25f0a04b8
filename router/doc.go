// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Daily Fictions API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, controller, cat, cfg)

# Endpoints

Health:

	GET /health

Rooms and proposals (public):

	GET  /rooms                          - Fixed room list
	POST /rooms/{room}/proposals         - Propose a film
	GET  /rooms/{room}/proposals         - Ranked standings
	GET  /rooms/{room}/proposals/{id}    - One ranked proposal

Voting (requires X-Session-Id or ?session_id=):

	POST   /rooms/{room}/proposals/{id}/vote - Vote
	DELETE /rooms/{room}/proposals/{id}/vote - Remove vote

Current pick and history:

	GET  /rooms/{room}/lock           - Current pick or {}
	POST /rooms/{room}/lock           - Lock a proposal
	GET  /rooms/{room}/played         - History, newest first (?limit=)
	GET  /rooms/{room}/played/export  - History spreadsheet

Weekly triggers (requires Authorization: Bearer CRON_SECRET, GET or POST):

	/cron/lock-weekly   - Lock every room's top proposal
	/cron/unlock-weekly - Clear every room's pick
*/
package router
