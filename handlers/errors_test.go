// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
	"github.com/danielhkuo/dailyfictions/testutil"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"unknown room", polls.ErrUnknownRoom, http.StatusNotFound, "Room not found"},
		{"room mismatch", fmt.Errorf("lock: %w", polls.ErrRoomMismatch), http.StatusNotFound, "Proposal not in this room"},
		{"proposal not found", polls.ErrProposalNotFound, http.StatusNotFound, "Proposal not found"},
		{"invalid input", fmt.Errorf("%w: session id is required", polls.ErrInvalidInput), http.StatusBadRequest, "session id is required"},
		{"storage failure", fmt.Errorf("add vote: %w: %w", polls.ErrStorage, errors.New("connection refused")), http.StatusServiceUnavailable, "Storage unavailable, try again"},
		{"joined storage failure", errors.Join(fmt.Errorf("lock comedy: %w", polls.ErrStorage)), http.StatusServiceUnavailable, "Storage unavailable, try again"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, httptest.NewRequest("GET", "/rooms/comedy/lock", nil), tt.err)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.expectedMessage {
				t.Errorf("Expected message '%s', got '%s'", tt.expectedMessage, resp.Message)
			}
		})
	}
}
