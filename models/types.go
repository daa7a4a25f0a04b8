// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Played history page sizes
const (
	DefaultPlayedLimit = 10
	MaxPlayedLimit     = 50
)

// Request types

type CreateProposalRequest struct {
	MovieID        *int64 `json:"movie_id"`
	TmdbMovieID    *int64 `json:"tmdb_movie_id"` // accepted for older clients
	Pitch          string `json:"pitch"`
	TrailerURL     string `json:"trailer_url"`
	SubmitterLabel string `json:"submitter_label"`
}

type LockRequest struct {
	ProposalID string `json:"proposal_id"`
}

// Response types

type VoteResponse struct {
	Voted bool `json:"voted"`
}

type UnvoteResponse struct {
	Removed bool `json:"removed"`
}

type LockResponse struct {
	Locked bool       `json:"locked"`
	Pick   LockedPick `json:"pick"`
}

type PlayedView struct {
	MovieID   int64     `json:"movie_id"`
	LockedAt  time.Time `json:"locked_at"`
	LockedAgo string    `json:"locked_ago"`
	Title     string    `json:"title,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
}

type LockWeeklyResponse struct {
	OK     bool     `json:"ok"`
	Locked int      `json:"locked"`
	Rooms  []string `json:"rooms"`
}

type UnlockWeeklyResponse struct {
	OK      bool `json:"ok"`
	Cleared int  `json:"cleared"`
}

// Domain types

// ProposalOptions carries the optional proposal fields
type ProposalOptions struct {
	Pitch          string
	TrailerURL     string
	SubmitterLabel string
}

type Proposal struct {
	ID             string    `json:"id"`
	RoomSlug       string    `json:"room_slug"`
	MovieID        int64     `json:"movie_id"`
	Pitch          string    `json:"pitch,omitempty"`
	TrailerURL     string    `json:"trailer_url,omitempty"`
	SubmitterLabel string    `json:"submitter_label,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Vote has no identity beyond the (proposal, session) pair
type Vote struct {
	ProposalID string `json:"proposal_id"`
	SessionID  string `json:"-"` // Never expose in JSON
}

// LockedPick is the current pick of a room. One per room, overwritten on every lock.
type LockedPick struct {
	ProposalID string    `json:"proposal_id"`
	MovieID    int64     `json:"movie_id"`
	LockedAt   time.Time `json:"locked_at"`
}

// PlayedEntry is one line of a room's play history
type PlayedEntry struct {
	MovieID  int64     `json:"movie_id"`
	LockedAt time.Time `json:"locked_at"`
}

// RankedProposal is a proposal annotated for a standings view.
// HasVoted is nil when the request carried no session.
type RankedProposal struct {
	Proposal
	VoteCount int    `json:"vote_count"`
	HasVoted  *bool  `json:"has_voted,omitempty"`
	Title     string `json:"title,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
