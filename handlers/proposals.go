// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
)

type ProposalHandler struct {
	svc     *polls.Service
	catalog catalog.Catalog
}

func NewProposalHandler(svc *polls.Service, cat catalog.Catalog) *ProposalHandler {
	if cat == nil {
		cat = catalog.Nop{}
	}
	return &ProposalHandler{svc: svc, catalog: cat}
}

// Create handles POST /rooms/:room/proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	movieID := req.MovieID
	if movieID == nil {
		movieID = req.TmdbMovieID
	}
	if movieID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	p, err := h.svc.Propose(r.Context(), room, *movieID, models.ProposalOptions{
		Pitch:          req.Pitch,
		TrailerURL:     req.TrailerURL,
		SubmitterLabel: req.SubmitterLabel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, p)
}

// List handles GET /rooms/:room/proposals
// Sorted by vote count. has_voted is only present when a session is supplied.
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.svc.Standings(r.Context(), r.PathValue("room"), middleware.SessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.enrich(r.Context(), ranked)
	middleware.JSONResponse(w, http.StatusOK, ranked)
}

// Get handles GET /rooms/:room/proposals/:id
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	id := r.PathValue("id")

	if _, err := h.svc.ProposalInRoom(r.Context(), room, id); err != nil {
		writeError(w, r, err)
		return
	}

	ranked, err := h.svc.Standings(r.Context(), room, middleware.SessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	for i := range ranked {
		if ranked[i].ID == id {
			h.enrich(r.Context(), ranked[i:i+1])
			middleware.JSONResponse(w, http.StatusOK, ranked[i])
			return
		}
	}
	writeError(w, r, polls.ErrProposalNotFound)
}

// enrich fills title and poster from the catalog. Lookup failures leave the fields empty.
func (h *ProposalHandler) enrich(ctx context.Context, ranked []models.RankedProposal) {
	ids := make([]int64, len(ranked))
	for i, p := range ranked {
		ids[i] = p.MovieID
	}
	movies := catalog.Lookup(ctx, h.catalog, ids)
	for i := range ranked {
		if m, ok := movies[ranked[i].MovieID]; ok {
			ranked[i].Title = m.Title
			ranked[i].PosterURL = m.PosterURL
		}
	}
}
