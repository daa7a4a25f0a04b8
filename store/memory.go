// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/dailyfictions/models"
)

type voteKey struct {
	proposalID string
	sessionID  string
}

// MemoryStore implements Store in process memory, for running without a
// database. A single mutex serializes every check-then-write.
type MemoryStore struct {
	mu        sync.RWMutex
	proposals []models.Proposal
	byID      map[string]int // proposal id -> index in proposals
	votes     map[voteKey]struct{}
	locked    map[string]models.LockedPick
	played    map[string][]models.PlayedEntry // most recent first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   map[string]int{},
		votes:  map[voteKey]struct{}{},
		locked: map[string]models.LockedPick{},
		played: map[string][]models.PlayedEntry{},
	}
}

func (m *MemoryStore) CreateProposal(_ context.Context, p models.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[p.ID] = len(m.proposals)
	m.proposals = append(m.proposals, p)
	return nil
}

func (m *MemoryStore) GetProposal(_ context.Context, id string) (models.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return models.Proposal{}, ErrNotFound
	}
	return m.proposals[i], nil
}

func (m *MemoryStore) ListProposals(_ context.Context, room string) ([]models.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Proposal{}
	for _, p := range m.proposals {
		if p.RoomSlug == room {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryStore) HasVoted(_ context.Context, proposalID, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.votes[voteKey{proposalID, sessionID}]
	return ok, nil
}

func (m *MemoryStore) AddVote(_ context.Context, proposalID, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := voteKey{proposalID, sessionID}
	if _, ok := m.votes[k]; ok {
		return false, nil
	}
	m.votes[k] = struct{}{}
	return true, nil
}

func (m *MemoryStore) RemoveVote(_ context.Context, proposalID, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := voteKey{proposalID, sessionID}
	if _, ok := m.votes[k]; !ok {
		return false, nil
	}
	delete(m.votes, k)
	return true, nil
}

func (m *MemoryStore) CountVotes(_ context.Context, proposalID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for k := range m.votes {
		if k.proposalID == proposalID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) ListVotes(_ context.Context) ([]models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Vote, 0, len(m.votes))
	for k := range m.votes {
		out = append(out, models.Vote{ProposalID: k.proposalID, SessionID: k.sessionID})
	}
	return out, nil
}

func (m *MemoryStore) GetLocked(_ context.Context, room string) (models.LockedPick, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pick, ok := m.locked[room]
	return pick, ok, nil
}

func (m *MemoryStore) Lock(_ context.Context, room string, pick models.LockedPick) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.locked[room] = pick
	entry := models.PlayedEntry{MovieID: pick.MovieID, LockedAt: pick.LockedAt}
	m.played[room] = append([]models.PlayedEntry{entry}, m.played[room]...)
	return nil
}

func (m *MemoryStore) ClearLocked(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.locked)
	m.locked = map[string]models.LockedPick{}
	return n, nil
}

func (m *MemoryStore) ListPlayed(_ context.Context, room string, limit int) ([]models.PlayedEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.played[room]
	if limit > 0 && limit < len(h) {
		h = h[:limit]
	}
	out := make([]models.PlayedEntry, len(h))
	copy(out, h)
	return out, nil
}
