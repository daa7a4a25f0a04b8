// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/export"
	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
	"github.com/danielhkuo/dailyfictions/rooms"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LockHandler struct {
	svc     *polls.Service
	catalog catalog.Catalog
}

func NewLockHandler(svc *polls.Service, cat catalog.Catalog) *LockHandler {
	if cat == nil {
		cat = catalog.Nop{}
	}
	return &LockHandler{svc: svc, catalog: cat}
}

// GetLock handles GET /rooms/:room/lock
// An unlocked room returns an empty object.
func (h *LockHandler) GetLock(w http.ResponseWriter, r *http.Request) {
	pick, ok, err := h.svc.Locked(r.Context(), r.PathValue("room"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, struct{}{})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pick)
}

// Lock handles POST /rooms/:room/lock
func (h *LockHandler) Lock(w http.ResponseWriter, r *http.Request) {
	var req models.LockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pick, err := h.svc.Lock(r.Context(), r.PathValue("room"), req.ProposalID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LockResponse{Locked: true, Pick: pick})
}

// Played handles GET /rooms/:room/played?limit=n
// Most recent first. limit defaults to 10 and is capped at 50.
func (h *LockHandler) Played(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	played, err := h.svc.Played(r.Context(), r.PathValue("room"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	movies := catalog.Lookup(r.Context(), h.catalog, movieIDs(played))
	now := h.svc.Now()

	views := make([]models.PlayedView, 0, len(played))
	for _, e := range played {
		m := movies[e.MovieID]
		views = append(views, models.PlayedView{
			MovieID:   e.MovieID,
			LockedAt:  e.LockedAt,
			LockedAgo: humanize.RelTime(e.LockedAt, now, "ago", "from now"),
			Title:     m.Title,
			PosterURL: m.PosterURL,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// ExportPlayed handles GET /rooms/:room/played/export
// Downloads the full history as a spreadsheet.
func (h *LockHandler) ExportPlayed(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("room")

	played, err := h.svc.Played(r.Context(), slug, 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	room, _ := rooms.Get(slug)

	movies := catalog.Lookup(r.Context(), h.catalog, movieIDs(played))
	f, err := export.PlayedWorkbook(room, played, movies)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(room, h.svc.Now())))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		slog.Error("failed to write played export", "room", slug, "error", err)
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return models.DefaultPlayedLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > models.MaxPlayedLimit {
		n = models.MaxPlayedLimit
	}
	return n, nil
}

func movieIDs(played []models.PlayedEntry) []int64 {
	ids := make([]int64, len(played))
	for i, e := range played {
		ids[i] = e.MovieID
	}
	return ids
}
