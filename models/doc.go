// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types shared by every package.

# Domain Types

	Proposal       a candidate film proposed into a room
	Vote           one (proposal, session) fact
	LockedPick     the current pick of a room
	PlayedEntry    one entry of a room's play history
	RankedProposal a proposal with vote_count and optional has_voted

Proposals are immutable once created. A room has at most one LockedPick;
history grows monotonically and is read most recent first.

# Request/Response Types

Request types mirror JSON bodies:

	CreateProposalRequest  POST /rooms/{room}/proposals
	LockRequest            POST /rooms/{room}/lock

Response types:

	VoteResponse           {"voted": bool}
	UnvoteResponse         {"removed": bool}
	LockResponse           {"locked": true, "pick": {...}}
	PlayedView             a played entry with locked_ago and catalog data
	LockWeeklyResponse     result of the scheduled lock trigger
	UnlockWeeklyResponse   result of the scheduled clear trigger

# Privacy

Vote.SessionID is tagged json:"-" and never leaves the server.
*/
package models
