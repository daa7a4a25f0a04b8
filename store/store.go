// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/dailyfictions/models"
)

var ErrNotFound = errors.New("not found")

// ProposalStore is the durable record of film proposals per room.
// Proposals are never updated or deleted through this interface.
type ProposalStore interface {
	CreateProposal(ctx context.Context, p models.Proposal) error
	// GetProposal returns ErrNotFound for an unknown id
	GetProposal(ctx context.Context, id string) (models.Proposal, error)
	// ListProposals returns the room's proposals in creation order
	ListProposals(ctx context.Context, room string) ([]models.Proposal, error)
}

// VoteLedger records (proposal, session) facts. AddVote and RemoveVote are
// atomic check-then-write operations on the pair.
type VoteLedger interface {
	HasVoted(ctx context.Context, proposalID, sessionID string) (bool, error)
	// AddVote reports false when the pair already existed
	AddVote(ctx context.Context, proposalID, sessionID string) (bool, error)
	// RemoveVote reports false when there was nothing to remove
	RemoveVote(ctx context.Context, proposalID, sessionID string) (bool, error)
	CountVotes(ctx context.Context, proposalID string) (int, error)
	ListVotes(ctx context.Context) ([]models.Vote, error)
}

// PickStore holds the locked pick per room and the play history.
type PickStore interface {
	// GetLocked reports false when the room has no current pick
	GetLocked(ctx context.Context, room string) (models.LockedPick, bool, error)
	// Lock overwrites the room's pick and prepends a history entry with the
	// same movie and timestamp. Either both writes happen or neither does.
	Lock(ctx context.Context, room string, pick models.LockedPick) error
	// ClearLocked removes every room's pick and returns how many were removed.
	// History is untouched.
	ClearLocked(ctx context.Context) (int, error)
	// ListPlayed returns history most recent first. limit <= 0 means all.
	ListPlayed(ctx context.Context, room string, limit int) ([]models.PlayedEntry, error)
}

// Store is the full storage surface
type Store interface {
	ProposalStore
	VoteLedger
	PickStore
}
