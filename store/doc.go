// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists proposals, votes, locked picks and play history.

# Interfaces

Callers depend on three narrow interfaces:

	ProposalStore  CreateProposal, GetProposal, ListProposals
	VoteLedger     HasVoted, AddVote, RemoveVote, CountVotes, ListVotes
	PickStore      GetLocked, Lock, ClearLocked, ListPlayed

Store bundles all three.

# Implementations

  - SQLStore: PostgreSQL or SQLite through database/sql
  - MemoryStore: process memory, one mutex around all state
  - RedisVoteLedger: VoteLedger only, one redis set per proposal

# Concurrency Contract

AddVote and RemoveVote are atomic per (proposal, session) pair:

  - SQLStore relies on the primary key with ON CONFLICT DO NOTHING and reads
    RowsAffected
  - RedisVoteLedger reads the SADD/SREM reply
  - MemoryStore holds its write lock across the check and the write

Lock writes the room's pick and its history entry in one transaction. If
either statement fails the transaction rolls back and neither is visible.

	if err := s.Lock(ctx, "comedy", pick); err != nil {
		// nothing was written
	}

Missing records are reported with ErrNotFound.
*/
package store
