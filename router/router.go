// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/cliparse"
	"github.com/danielhkuo/dailyfictions/cycle"
	"github.com/danielhkuo/dailyfictions/handlers"
	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/polls"
)

func NewRouter(svc *polls.Service, controller *cycle.Controller, cat catalog.Catalog, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roomsHandler := handlers.NewRoomsHandler()
	proposalHandler := handlers.NewProposalHandler(svc, cat)
	votingHandler := handlers.NewVotingHandler(svc)
	lockHandler := handlers.NewLockHandler(svc, cat)
	cronHandler := handlers.NewCronHandler(controller)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /rooms", middleware.WithLogging(roomsHandler.List))

	// Proposals and standings (public)
	mux.HandleFunc("POST /rooms/{room}/proposals", middleware.WithLogging(proposalHandler.Create))
	mux.HandleFunc("GET /rooms/{room}/proposals", middleware.WithLogging(proposalHandler.List))
	mux.HandleFunc("GET /rooms/{room}/proposals/{id}", middleware.WithLogging(proposalHandler.Get))

	// Voting (requires a session)
	mux.HandleFunc("POST /rooms/{room}/proposals/{id}/vote", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("DELETE /rooms/{room}/proposals/{id}/vote", middleware.WithLogging(votingHandler.Unvote))

	// Current pick and history
	mux.HandleFunc("GET /rooms/{room}/lock", middleware.WithLogging(lockHandler.GetLock))
	mux.HandleFunc("POST /rooms/{room}/lock", middleware.WithLogging(lockHandler.Lock))
	mux.HandleFunc("GET /rooms/{room}/played", middleware.WithLogging(lockHandler.Played))
	mux.HandleFunc("GET /rooms/{room}/played/export", middleware.WithLogging(lockHandler.ExportPlayed))

	// Weekly triggers (bearer secret). Cron services tend to send GET.
	lockWeekly := middleware.WithLogging(middleware.RequireBearer(cfg.CronSecret, cronHandler.LockWeekly))
	unlockWeekly := middleware.WithLogging(middleware.RequireBearer(cfg.CronSecret, cronHandler.UnlockWeekly))
	mux.HandleFunc("GET /cron/lock-weekly", lockWeekly)
	mux.HandleFunc("POST /cron/lock-weekly", lockWeekly)
	mux.HandleFunc("GET /cron/unlock-weekly", unlockWeekly)
	mux.HandleFunc("POST /cron/unlock-weekly", unlockWeekly)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dailyfictions API v1"))
	})

	return mux
}
