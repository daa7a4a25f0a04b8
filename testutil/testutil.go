// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/dailyfictions/cliparse"
	"github.com/danielhkuo/dailyfictions/cycle"
	"github.com/danielhkuo/dailyfictions/db"
	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/polls"
	"github.com/danielhkuo/dailyfictions/store"
)

// TestCronSecret is the bearer secret in GetTestConfig
const TestCronSecret = "test-cron-secret"

// StartTime is the first reading of every test clock (a Friday)
var StartTime = time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)

// SetupTestDB opens a fresh sqlite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dailyfictions.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// Clock advances one second on every reading so creation order is never tied
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: StartTime}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

// NewTestService wires a service to the database with a test clock
func NewTestService(t *testing.T, conn *sql.DB) *polls.Service {
	t.Helper()
	s := store.NewSQLStore(conn)
	return polls.NewService(s, s, s, NewClock())
}

// NewTestController drives every room through svc
func NewTestController(svc *polls.Service) *cycle.Controller {
	return cycle.NewController(svc, nil)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	loc := time.FixedZone("MYT", 8*60*60)
	lock, _ := cycle.ParseSchedule("fri 16:00", loc)
	unlock, _ := cycle.ParseSchedule("mon 00:00", loc)
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   db.TypeSQLite,
		CronSecret:     TestCronSecret,
		LockSchedule:   lock,
		UnlockSchedule: unlock,
	}
}

// CreateTestProposal adds a proposal for movieID to room
func CreateTestProposal(t *testing.T, svc *polls.Service, room string, movieID int64) models.Proposal {
	t.Helper()

	p, err := svc.Propose(context.Background(), room, movieID, models.ProposalOptions{})
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	return p
}

// CastTestVotes records one vote per session for the proposal
func CastTestVotes(t *testing.T, svc *polls.Service, room, proposalID string, sessions ...string) {
	t.Helper()

	for _, s := range sessions {
		if _, err := svc.Vote(context.Background(), room, proposalID, s); err != nil {
			t.Fatalf("Failed to cast test vote for %s: %v", s, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
