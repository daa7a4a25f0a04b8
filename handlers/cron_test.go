// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/testutil"
)

// TestWeeklyCycle covers the comedy scenario: A has no votes, B has two.
// The weekly lock picks B, and the weekly unlock clears it but keeps history.
func TestWeeklyCycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := testutil.NewTestService(t, db)
	cron := NewCronHandler(testutil.NewTestController(svc))
	lock := NewLockHandler(svc, nil)

	testutil.CreateTestProposal(t, svc, "comedy", 10)
	b := testutil.CreateTestProposal(t, svc, "comedy", 20)
	testutil.CastTestVotes(t, svc, "comedy", b.ID, "s1", "s2")

	// Step 1: weekly lock
	w := httptest.NewRecorder()
	cron.LockWeekly(w, testutil.MakeRequest("POST", "/cron/lock-weekly", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var lockResp models.LockWeeklyResponse
	testutil.AssertJSON(t, w, &lockResp)
	if !lockResp.OK || lockResp.Locked != 1 {
		t.Fatalf("Expected one locked room, got %+v", lockResp)
	}
	if len(lockResp.Rooms) != 1 || lockResp.Rooms[0] != "comedy" {
		t.Errorf("Expected rooms [comedy], got %v", lockResp.Rooms)
	}

	// Step 2: GET lock shows B's movie
	w = httptest.NewRecorder()
	lock.GetLock(w, lockRequest("GET", "comedy", nil))
	var pick models.LockedPick
	testutil.AssertJSON(t, w, &pick)
	if pick.ProposalID != b.ID || pick.MovieID != 20 {
		t.Errorf("Expected B (movie 20) locked, got %+v", pick)
	}

	// Step 3: history leads with movie 20
	played, err := svc.Played(context.Background(), "comedy", 0)
	if err != nil {
		t.Fatalf("Played failed: %v", err)
	}
	if len(played) != 1 || played[0].MovieID != 20 {
		t.Fatalf("Expected history [20], got %+v", played)
	}

	// Step 4: weekly unlock
	w = httptest.NewRecorder()
	cron.UnlockWeekly(w, testutil.MakeRequest("GET", "/cron/unlock-weekly", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var unlockResp models.UnlockWeeklyResponse
	testutil.AssertJSON(t, w, &unlockResp)
	if !unlockResp.OK || unlockResp.Cleared != 1 {
		t.Errorf("Expected one cleared pick, got %+v", unlockResp)
	}

	// Step 5: pick gone, history and votes kept
	if _, locked, _ := svc.Locked(context.Background(), "comedy"); locked {
		t.Error("Expected comedy to be unlocked")
	}
	played, _ = svc.Played(context.Background(), "comedy", 0)
	if len(played) != 1 {
		t.Errorf("Expected history to survive the clear, got %d entries", len(played))
	}
	count, _ := svc.VoteCount(context.Background(), b.ID)
	if count != 2 {
		t.Errorf("Expected votes to survive the clear, got %d", count)
	}
}

func TestLockWeekly_NoProposals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := testutil.NewTestService(t, db)
	cron := NewCronHandler(testutil.NewTestController(svc))

	w := httptest.NewRecorder()
	cron.LockWeekly(w, testutil.MakeRequest("POST", "/cron/lock-weekly", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.LockWeeklyResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Locked != 0 || len(resp.Rooms) != 0 {
		t.Errorf("Expected nothing locked, got %+v", resp)
	}
	if resp.Rooms == nil {
		t.Error("Expected an empty rooms array, not null")
	}
}

func TestLockWeekly_RunTwiceAppendsHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	svc := testutil.NewTestService(t, db)
	cron := NewCronHandler(testutil.NewTestController(svc))
	testutil.CreateTestProposal(t, svc, "animation", 129)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		cron.LockWeekly(w, testutil.MakeRequest("POST", "/cron/lock-weekly", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	played, _ := svc.Played(context.Background(), "animation", 0)
	if len(played) != 2 {
		t.Errorf("Expected two history entries after two runs, got %d", len(played))
	}
}
