// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/ranking"
	"github.com/danielhkuo/dailyfictions/rooms"
	"github.com/danielhkuo/dailyfictions/store"
)

type Service struct {
	proposals store.ProposalStore
	votes     store.VoteLedger
	picks     store.PickStore
	clock     Clock
	newID     func() string
}

func NewService(proposals store.ProposalStore, votes store.VoteLedger, picks store.PickStore, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock
	}
	return &Service{
		proposals: proposals,
		votes:     votes,
		picks:     picks,
		clock:     clock,
		newID:     uuid.NewString,
	}
}

// now is truncated to microseconds so values survive a postgres round trip
func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

func checkRoom(room string) error {
	if !rooms.IsValid(room) {
		return ErrUnknownRoom
	}
	return nil
}

// ---------- Proposals ----------

// Propose records a new proposal. The movie id is not checked against the catalog.
func (s *Service) Propose(ctx context.Context, room string, movieID int64, opts models.ProposalOptions) (models.Proposal, error) {
	if err := checkRoom(room); err != nil {
		return models.Proposal{}, err
	}
	if movieID <= 0 {
		return models.Proposal{}, invalid("movie_id must be a positive integer")
	}

	p := models.Proposal{
		ID:             s.newID(),
		RoomSlug:       room,
		MovieID:        movieID,
		Pitch:          strings.TrimSpace(opts.Pitch),
		TrailerURL:     strings.TrimSpace(opts.TrailerURL),
		SubmitterLabel: strings.TrimSpace(opts.SubmitterLabel),
		CreatedAt:      s.now(),
	}
	if err := s.proposals.CreateProposal(ctx, p); err != nil {
		return models.Proposal{}, storageErr("create proposal", err)
	}

	slog.Info("proposal created", "room", room, "proposal_id", p.ID, "movie_id", movieID)
	return p, nil
}

func (s *Service) Proposal(ctx context.Context, id string) (models.Proposal, error) {
	p, err := s.proposals.GetProposal(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Proposal{}, ErrProposalNotFound
	}
	if err != nil {
		return models.Proposal{}, storageErr("get proposal", err)
	}
	return p, nil
}

// ProposalInRoom loads a proposal and checks that it belongs to room
func (s *Service) ProposalInRoom(ctx context.Context, room, id string) (models.Proposal, error) {
	if err := checkRoom(room); err != nil {
		return models.Proposal{}, err
	}
	if id == "" {
		return models.Proposal{}, invalid("proposal_id is required")
	}
	p, err := s.Proposal(ctx, id)
	if err != nil {
		return models.Proposal{}, err
	}
	if p.RoomSlug != room {
		return models.Proposal{}, ErrRoomMismatch
	}
	return p, nil
}

func (s *Service) Proposals(ctx context.Context, room string) ([]models.Proposal, error) {
	if err := checkRoom(room); err != nil {
		return nil, err
	}
	list, err := s.proposals.ListProposals(ctx, room)
	if err != nil {
		return nil, storageErr("list proposals", err)
	}
	return list, nil
}

// Standings ranks a room's proposals. The proposal and vote reads are
// independent snapshots.
func (s *Service) Standings(ctx context.Context, room, session string) ([]models.RankedProposal, error) {
	list, err := s.Proposals(ctx, room)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.ListVotes(ctx)
	if err != nil {
		return nil, storageErr("list votes", err)
	}
	return ranking.Rank(list, votes, session), nil
}

// ---------- Votes ----------

func requireSession(session string) error {
	if strings.TrimSpace(session) == "" {
		return invalid("session id is required")
	}
	return nil
}

// Vote adds the session's vote. A repeat vote is a no-op reported as false.
func (s *Service) Vote(ctx context.Context, room, proposalID, session string) (bool, error) {
	if err := requireSession(session); err != nil {
		return false, err
	}
	if _, err := s.ProposalInRoom(ctx, room, proposalID); err != nil {
		return false, err
	}
	added, err := s.votes.AddVote(ctx, proposalID, session)
	if err != nil {
		return false, storageErr("add vote", err)
	}
	return added, nil
}

// Unvote removes the session's vote. Removing a missing vote reports false.
func (s *Service) Unvote(ctx context.Context, room, proposalID, session string) (bool, error) {
	if err := requireSession(session); err != nil {
		return false, err
	}
	if _, err := s.ProposalInRoom(ctx, room, proposalID); err != nil {
		return false, err
	}
	removed, err := s.votes.RemoveVote(ctx, proposalID, session)
	if err != nil {
		return false, storageErr("remove vote", err)
	}
	return removed, nil
}

func (s *Service) HasVoted(ctx context.Context, proposalID, session string) (bool, error) {
	voted, err := s.votes.HasVoted(ctx, proposalID, session)
	if err != nil {
		return false, storageErr("has voted", err)
	}
	return voted, nil
}

func (s *Service) VoteCount(ctx context.Context, proposalID string) (int, error) {
	n, err := s.votes.CountVotes(ctx, proposalID)
	if err != nil {
		return 0, storageErr("count votes", err)
	}
	return n, nil
}

// ---------- Lock Controller ----------

// Lock makes the proposal the room's current pick and prepends it to the
// room's history in one atomic write. A failed write leaves both untouched.
func (s *Service) Lock(ctx context.Context, room, proposalID string) (models.LockedPick, error) {
	p, err := s.ProposalInRoom(ctx, room, proposalID)
	if err != nil {
		return models.LockedPick{}, err
	}

	previous, hadPick, err := s.picks.GetLocked(ctx, room)
	if err != nil {
		return models.LockedPick{}, storageErr("get locked pick", err)
	}

	pick := models.LockedPick{
		ProposalID: p.ID,
		MovieID:    p.MovieID,
		LockedAt:   s.now(),
	}
	if err := s.picks.Lock(ctx, room, pick); err != nil {
		return models.LockedPick{}, storageErr("lock room", err)
	}

	attrs := []any{"room", room, "proposal_id", p.ID, "movie_id", p.MovieID}
	if hadPick {
		attrs = append(attrs, "replaced_proposal_id", previous.ProposalID)
	}
	slog.Info("room locked", attrs...)
	return pick, nil
}

// Locked returns the current pick, or false when the room is unlocked
func (s *Service) Locked(ctx context.Context, room string) (models.LockedPick, bool, error) {
	if err := checkRoom(room); err != nil {
		return models.LockedPick{}, false, err
	}
	pick, ok, err := s.picks.GetLocked(ctx, room)
	if err != nil {
		return models.LockedPick{}, false, storageErr("get locked pick", err)
	}
	return pick, ok, nil
}

// ClearLocks removes every room's pick. History, proposals and votes are kept.
func (s *Service) ClearLocks(ctx context.Context) (int, error) {
	n, err := s.picks.ClearLocked(ctx)
	if err != nil {
		return 0, storageErr("clear locked picks", err)
	}
	slog.Info("locked picks cleared", "count", n)
	return n, nil
}

// Played returns the room's history, most recent first. limit <= 0 returns all.
func (s *Service) Played(ctx context.Context, room string, limit int) ([]models.PlayedEntry, error) {
	if err := checkRoom(room); err != nil {
		return nil, err
	}
	played, err := s.picks.ListPlayed(ctx, room, limit)
	if err != nil {
		return nil, storageErr("list played", err)
	}
	return played, nil
}

// Now exposes the service clock so views can render relative times
func (s *Service) Now() time.Time {
	return s.now()
}
