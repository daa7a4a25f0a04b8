// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/polls"
)

// writeError maps service errors onto status codes.
// Storage failures are 503 so callers know a retry may succeed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, polls.ErrUnknownRoom):
		middleware.ErrorResponse(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, polls.ErrRoomMismatch):
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not in this room")
	case errors.Is(err, polls.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
	case errors.Is(err, polls.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), polls.ErrInvalidInput.Error()+": ")
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
	case errors.Is(err, polls.ErrStorage):
		slog.Error("storage failure", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable, try again")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
