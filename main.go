package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/cliparse"
	"github.com/danielhkuo/dailyfictions/cycle"
	"github.com/danielhkuo/dailyfictions/db"
	"github.com/danielhkuo/dailyfictions/middleware"
	"github.com/danielhkuo/dailyfictions/polls"
	"github.com/danielhkuo/dailyfictions/router"
	"github.com/danielhkuo/dailyfictions/store"
)

const redisKeyPrefix = "dailyfictions:"

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage: proposals and picks in the database, votes there too unless redis is configured
	var proposals store.ProposalStore
	var votes store.VoteLedger
	var picks store.PickStore

	if cfg.DatabaseType == cliparse.DatabaseMemory {
		mem := store.NewMemoryStore()
		proposals, votes, picks = mem, mem, mem
		slog.Warn("using in-memory storage; nothing survives a restart")
	} else {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		sqlStore := store.NewSQLStore(dbConn)
		proposals, votes, picks = sqlStore, sqlStore, sqlStore
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			slog.Error("redis ping failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		votes = store.NewRedisVoteLedger(client, redisKeyPrefix)
		slog.Info("Vote ledger on redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	}

	var cat catalog.Catalog = catalog.Nop{}
	if cfg.TMDBAPIKey != "" {
		cat = catalog.NewTMDB(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
		slog.Info("Movie catalog enabled", "base_url", cfg.TMDBBaseURL)
	}

	svc := polls.NewService(proposals, votes, picks, polls.SystemClock)
	controller := cycle.NewController(svc, nil)

	if cfg.SchedulerEnabled {
		scheduler := cycle.NewScheduler(controller, cfg.LockSchedule, cfg.UnlockSchedule, polls.SystemClock)
		go func() {
			if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("scheduler stopped", "error", err)
			}
		}()
	}

	// Create router
	mux := router.NewRouter(svc, controller, cat, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func setupLogging(cfg cliparse.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
