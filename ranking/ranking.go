// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"sort"

	"github.com/danielhkuo/dailyfictions/models"
)

// Rank counts votes per proposal and sorts by vote count descending.
// Ties keep the order of proposals. When session is non-empty every entry
// carries has_voted for that session.
func Rank(proposals []models.Proposal, votes []models.Vote, session string) []models.RankedProposal {
	counts := make(map[string]int, len(proposals))
	mine := map[string]bool{}
	for _, v := range votes {
		counts[v.ProposalID]++
		if session != "" && v.SessionID == session {
			mine[v.ProposalID] = true
		}
	}

	ranked := make([]models.RankedProposal, len(proposals))
	for i, p := range proposals {
		ranked[i] = models.RankedProposal{
			Proposal:  p,
			VoteCount: counts[p.ID],
		}
		if session != "" {
			voted := mine[p.ID]
			ranked[i].HasVoted = &voted
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteCount > ranked[j].VoteCount
	})
	return ranked
}

// Top returns the highest ranked proposal, or false for an empty room
func Top(ranked []models.RankedProposal) (models.RankedProposal, bool) {
	if len(ranked) == 0 {
		return models.RankedProposal{}, false
	}
	return ranked[0], true
}
