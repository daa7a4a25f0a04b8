// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
)

type VotingHandler struct {
	svc *polls.Service
}

func NewVotingHandler(svc *polls.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Vote handles POST /rooms/:room/proposals/:id/vote
// Voting twice is not an error; the second call reports voted=false.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.Vote(r.Context(), r.PathValue("room"), r.PathValue("id"), middleware.SessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Voted: added})
}

// Unvote handles DELETE /rooms/:room/proposals/:id/vote
func (h *VotingHandler) Unvote(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Unvote(r.Context(), r.PathValue("room"), r.PathValue("id"), middleware.SessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UnvoteResponse{Removed: removed})
}
