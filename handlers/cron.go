// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dailyfictions/cycle"
	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/models"
)

// CronHandler exposes the weekly transitions to an external scheduler.
// Routes are expected to sit behind middleware.RequireBearer.
type CronHandler struct {
	controller *cycle.Controller
}

func NewCronHandler(controller *cycle.Controller) *CronHandler {
	return &CronHandler{controller: controller}
}

// LockWeekly handles GET|POST /cron/lock-weekly
// Any failing room fails the call; rooms locked before the failure stay locked.
func (h *CronHandler) LockWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.LockAll(r.Context())
	if err != nil {
		slog.Error("weekly lock failed", "locked_rooms", result.Rooms, "error", err)
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LockWeeklyResponse{
		OK:     true,
		Locked: len(result.Rooms),
		Rooms:  result.Rooms,
	})
}

// UnlockWeekly handles GET|POST /cron/unlock-weekly
func (h *CronHandler) UnlockWeekly(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.controller.ClearAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UnlockWeeklyResponse{OK: true, Cleared: cleared})
}
