// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/rooms"
)

type RoomsHandler struct{}

func NewRoomsHandler() *RoomsHandler {
	return &RoomsHandler{}
}

// List handles GET /rooms
func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, rooms.All())
}
